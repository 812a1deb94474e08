package main

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/micdoctor/internal/grade"
	"github.com/farcloser/micdoctor/internal/types"
)

var errDigestArgs = errors.New("expected exactly one argument: path to report.jsonl")

func digestCommand() *cli.Command {
	return &cli.Command{
		Name:      "digest",
		Usage:     "Produce a summary digest from a micdoctor JSONL report",
		ArgsUsage: "<report.jsonl>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "issue",
				Usage: "Show recordings whose primary issue is this dimension: level, noise, echo",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return errDigestArgs
			}

			return runDigest(cmd.Args().First(), cmd.String("issue"))
		},
	}
}

func runDigest(reportPath, issueFilter string) error {
	if issueFilter != "" {
		if _, err := types.ParseDimension(issueFilter); err != nil {
			return err
		}
	}

	file, err := os.Open(reportPath) //nolint:gosec // CLI tool opens user-specified report files
	if err != nil {
		return fmt.Errorf("opening report: %w", err)
	}
	defer file.Close()

	records, err := readRecords(file)
	if err != nil {
		return err
	}

	printDigest(os.Stdout, records)

	if issueFilter != "" {
		printIssueDetail(os.Stdout, records, issueFilter)
	}

	return nil
}

func readRecords(reader io.Reader) ([]digestRecord, error) {
	var records []digestRecord

	scanner := bufio.NewScanner(reader)

	const maxLineSize = 1024 * 1024 // 1MB
	scanner.Buffer(make([]byte, 0, maxLineSize), maxLineSize)

	for scanner.Scan() {
		var rec digestRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			records = append(records, digestRecord{Error: "parse error"})

			continue
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	return records, nil
}

type digest struct {
	total      int
	failed     int
	grades     map[string]int
	fits       map[string]int
	states     map[string]int
	dimensions map[string]*issueBreakdown
}

func summarize(records []digestRecord) digest {
	result := digest{
		total:      len(records),
		grades:     map[string]int{},
		fits:       map[string]int{},
		states:     map[string]int{},
		dimensions: map[string]*issueBreakdown{},
	}

	for _, dim := range types.Dimensions {
		result.dimensions[dim.String()] = &issueBreakdown{Dimension: dim.String()}
	}

	for _, rec := range records {
		if rec.Error != "" || rec.Analysis == nil {
			result.failed++

			continue
		}

		result.grades[rec.Analysis.Verdict.Grade]++
		result.fits[rec.Analysis.Verdict.UseCaseFit]++

		if state := rec.Analysis.SpecialState; state != "" && state != types.SpecialStateNone.String() {
			result.states[state]++
		}

		if breakdown, ok := result.dimensions[rec.Analysis.Verdict.PrimaryIssue]; ok {
			breakdown.Primary++
		}

		for name, rating := range rec.Analysis.Verdict.Dimensions {
			breakdown, ok := result.dimensions[name]
			if !ok {
				continue
			}

			breakdown.Rated++
			breakdown.StarSum += rating.Stars

			switch {
			case rating.Stars <= 1:
				breakdown.Fail++
			case rating.Stars <= 3:
				breakdown.Warn++
			}
		}
	}

	return result
}

func printDigest(out io.Writer, records []digestRecord) {
	result := summarize(records)

	fmt.Fprintln(out, "=== Micdoctor Report Digest ===")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total recordings:  %d\n", result.total)
	fmt.Fprintf(out, "Failed:            %d\n", result.failed)
	fmt.Fprintf(out, "Graded:            %d\n", result.total-result.failed)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "--- Grades ---")

	for _, letter := range grade.All {
		fmt.Fprintf(out, "  %s:  %d\n", letter, result.grades[string(letter)])
	}

	fmt.Fprintln(out)

	fmt.Fprintln(out, "--- Use Case Fit ---")
	fmt.Fprintf(out, "  pass:  %d\n", result.fits["pass"])
	fmt.Fprintf(out, "  warn:  %d\n", result.fits["warn"])
	fmt.Fprintf(out, "  fail:  %d\n", result.fits["fail"])
	fmt.Fprintln(out)

	if len(result.states) > 0 {
		fmt.Fprintln(out, "--- Unreliable Recordings ---")

		for _, state := range []types.SpecialState{
			types.SpecialStateTooShort,
			types.SpecialStateSilent,
			types.SpecialStateNoSpeech,
		} {
			if count := result.states[state.String()]; count > 0 {
				fmt.Fprintf(out, "  %s:  %d\n", state, count)
			}
		}

		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "--- Issues By Dimension ---")

	breakdowns := make([]*issueBreakdown, 0, len(result.dimensions))
	for _, bd := range result.dimensions {
		breakdowns = append(breakdowns, bd)
	}

	slices.SortFunc(breakdowns, func(a, b *issueBreakdown) int {
		return cmp.Or(b.Primary-a.Primary, cmp.Compare(a.Dimension, b.Dimension))
	})

	for _, bd := range breakdowns {
		average := 0.0
		if bd.Rated > 0 {
			average = float64(bd.StarSum) / float64(bd.Rated)
		}

		fmt.Fprintf(out, "  %s\n", bd.Dimension)
		fmt.Fprintf(out, "    primary: %d  poor: %d  fair: %d  average stars: %.1f\n",
			bd.Primary, bd.Fail, bd.Warn, average)
	}
}

type issueEntry struct {
	file        string
	grade       string
	stars       int
	description string
	fix         string
	step        string
}

func printIssueDetail(out io.Writer, records []digestRecord, dimension string) {
	fmt.Fprintln(out)

	var entries []issueEntry

	for _, rec := range records {
		if rec.Error != "" || rec.Analysis == nil || rec.Analysis.Verdict.PrimaryIssue != dimension {
			continue
		}

		rating := rec.Analysis.Verdict.Dimensions[dimension]

		entry := issueEntry{
			file:        rec.File,
			grade:       rec.Analysis.Verdict.Grade,
			stars:       rating.Stars,
			description: rating.DescriptionTag,
			fix:         rec.Analysis.Recommendation.FixTag,
			step:        rec.Analysis.Recommendation.StepKey,
		}

		if entry.file == "" {
			entry.file = "(redacted)"
		}

		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "No recordings with %s as primary issue\n", dimension)

		return
	}

	slices.SortStableFunc(entries, func(a, b issueEntry) int {
		return a.stars - b.stars
	})

	fmt.Fprintf(out, "=== %s: %d recordings ===\n\n", dimension, len(entries))

	for _, entry := range entries {
		fmt.Fprintf(out, "  %s\n", entry.file)
		fmt.Fprintf(out, "    grade: %s  stars: %d  %s\n", entry.grade, entry.stars, entry.description)

		if entry.fix != "" {
			fmt.Fprintf(out, "    fix: %s\n", entry.fix)
		}

		if entry.step != "" {
			fmt.Fprintf(out, "    first step: %s\n", entry.step)
		}

		fmt.Fprintln(out)
	}
}
