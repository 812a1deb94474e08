package verdict

import (
	"slices"
	"strings"

	"github.com/farcloser/micdoctor/internal/fit"
	"github.com/farcloser/micdoctor/internal/types"
)

const maxNotes = 2

// harderUseCases are the use cases a caution note may be raised about.
//
//nolint:gochecknoglobals // read-only
var harderUseCases = []types.UseCase{types.UseCasePodcast}

// SecondaryNotes compares the projected fit of the other use cases and returns at most two note tags:
// one "also good for" note, then one caution about a harder use case.
func SecondaryNotes(selected types.UseCase, primary fit.Fit, projected map[types.UseCase]fit.Fit) []string {
	others := make([]types.UseCase, 0, len(types.UseCases)-1)

	for _, useCase := range types.UseCases {
		if useCase != selected {
			others = append(others, useCase)
		}
	}

	slices.SortStableFunc(others, func(a, b types.UseCase) int {
		if diff := projected[b].Rank() - projected[a].Rank(); diff != 0 {
			return diff
		}

		return strings.Compare(a.String(), b.String())
	})

	notes := make([]string, 0, maxNotes)

	if positive, ok := positiveNote(others, primary, projected); ok {
		notes = append(notes, "also_good_for_"+positive.String())
	}

	if primary != fit.Fail {
		for _, useCase := range others {
			if slices.Contains(harderUseCases, useCase) && projected[useCase] == fit.Fail {
				notes = append(notes, "caution_"+useCase.String()+"_fails")

				break
			}
		}
	}

	return notes
}

func positiveNote(ranked []types.UseCase, primary fit.Fit, projected map[types.UseCase]fit.Fit) (types.UseCase, bool) {
	for _, useCase := range ranked {
		other := projected[useCase]

		switch primary {
		case fit.Pass:
			if other == fit.Pass {
				return useCase, true
			}
		case fit.Warn:
			if useCase == types.UseCaseMeetings && other == fit.Pass {
				return useCase, true
			}
		default:
			if (useCase == types.UseCaseMeetings || useCase == types.UseCaseStreaming) && other != fit.Fail {
				return useCase, true
			}
		}
	}

	return 0, false
}
