//nolint:wrapcheck
package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/farcloser/micdoctor"
	"github.com/farcloser/micdoctor/internal/capture"
	"github.com/farcloser/micdoctor/internal/cliopts"
	"github.com/farcloser/micdoctor/internal/integration/ffmpeg"
	"github.com/farcloser/micdoctor/internal/integration/ffprobe"
	"github.com/farcloser/micdoctor/internal/output"
	"github.com/farcloser/micdoctor/internal/types"
)

const defaultOutputFile = "micdoctor-report.jsonl"

var (
	errReportArgs   = errors.New("expected exactly one argument: folder path")
	errNotDirectory = errors.New("not a directory")
	errNoAudioFiles = errors.New("no .wav, .flac, .m4a, .mp3, .ogg or .opus files found")
)

//nolint:gochecknoglobals // effectively const
var audioExtensions = []string{".wav", ".flac", ".m4a", ".mp3", ".ogg", ".opus"}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "Grade every recording in a folder and write a JSONL report",
		ArgsUsage: "<folder>",
		Flags: append(cliopts.Flags(types.ModeBasic),
			&cli.BoolFlag{
				Name:  "redact-path",
				Usage: "Strip file paths from the report",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Report file (a gzipped copy is written next to it)",
				Value:   defaultOutputFile,
			},
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"j"},
				Usage:   "Number of concurrent workers",
				Value:   runtime.NumCPU(),
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errReportArgs, cmd.NArg())
			}

			opts, err := cliopts.Options(cmd)
			if err != nil {
				return err
			}

			return runReport(ctx, reportConfig{
				folder:  cmd.Args().First(),
				output:  cmd.String("output"),
				redact:  cmd.Bool("redact-path"),
				workers: max(cmd.Int("workers"), 1),
				opts:    opts,
			})
		},
	}
}

type reportConfig struct {
	folder  string
	output  string
	redact  bool
	workers int
	opts    micdoctor.Options
}

func runReport(ctx context.Context, conf reportConfig) error {
	info, err := os.Stat(conf.folder)
	if err != nil || !info.IsDir() {
		return fmt.Errorf("%q: %w", conf.folder, errNotDirectory)
	}

	files, err := collectAudioFiles(conf.folder)
	if err != nil {
		return fmt.Errorf("scanning folder: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("%q: %w", conf.folder, errNoAudioFiles)
	}

	fmt.Fprintf(os.Stderr, "Found %d files to grade (%d workers)\n", len(files), conf.workers)

	startTime := time.Now()
	results := make([]Record, len(files))

	var progress atomic.Int64

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(conf.workers)

	for idx, filePath := range files {
		group.Go(func() error {
			results[idx] = processFile(groupCtx, filePath, conf.opts)

			done := progress.Add(1)
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", done, len(files), filePath)

			return nil
		})
	}

	// Per-file failures are recorded, never returned.
	_ = group.Wait()

	out, err := os.Create(conf.output)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	failed := 0

	var totalProbe, totalDecode, totalAnalyze time.Duration

	for idx := range results {
		record := &results[idx]

		if record.Error != "" {
			failed++
		}

		if record.Timing != nil {
			totalProbe += millisToDuration(record.Timing.ProbeMs)
			totalDecode += millisToDuration(record.Timing.DecodeMs)
			totalAnalyze += millisToDuration(record.Timing.AnalyzeMs)
		}

		if conf.redact {
			record.File = ""
			record.Probe = redactProbe(record.Probe)
		}

		if err := enc.Encode(record); err != nil {
			slog.Error("writing record", "file", files[idx], "error", err)
		}
	}

	out.Close()

	if err := compressFile(conf.output); err != nil {
		slog.Error("compressing report", "error", err)
	}

	elapsed := time.Since(startTime)

	fmt.Fprintf(os.Stderr, "\nDone: %d files in %s (%d failed)\n", len(files), elapsed.Truncate(time.Second), failed)
	fmt.Fprintf(os.Stderr, "Report written to %s (and %s.gz)\n", conf.output, conf.output)

	analyzed := len(files) - failed
	fmt.Fprintf(os.Stderr, "\n--- Timing ---\n")
	fmt.Fprintf(os.Stderr, "  Wall clock:  %s\n", elapsed.Truncate(time.Millisecond))
	fmt.Fprintf(os.Stderr, "  ffprobe:     %s (cumulative)\n", totalProbe.Truncate(time.Millisecond))
	fmt.Fprintf(os.Stderr, "  ffmpeg:      %s (cumulative)\n", totalDecode.Truncate(time.Millisecond))
	fmt.Fprintf(os.Stderr, "  grading:     %s (cumulative)\n", totalAnalyze.Truncate(time.Millisecond))

	if analyzed > 0 {
		fmt.Fprintf(os.Stderr, "  avg/file:    %s\n", (totalProbe+totalDecode+totalAnalyze)/time.Duration(analyzed))
	}

	fmt.Fprintln(os.Stderr)

	return runDigest(conf.output, "")
}

func processFile(ctx context.Context, filePath string, opts micdoctor.Options) Record {
	fileStart := time.Now()
	timing := &RecordTiming{}

	probeStart := time.Now()

	probeResult, err := ffprobe.Probe(ctx, filePath)

	timing.ProbeMs = durationMs(time.Since(probeStart))

	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("probe failed: %v", err), Timing: timing}
	}

	stream, err := probeResult.AudioStream()
	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("no audio stream: %v", err), Timing: timing}
	}

	pcmFormat, err := capture.FormatOf(stream)
	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("format error: %v", err), Timing: timing}
	}

	decodeStart := time.Now()

	var pcmBuf bytes.Buffer

	err = ffmpeg.Decode(ctx, filePath, &pcmBuf, 0, pcmFormat.Encoding)

	timing.DecodeMs = durationMs(time.Since(decodeStart))

	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("extraction failed: %v", err), Timing: timing}
	}

	buf, err := capture.ReadRaw(&pcmBuf, pcmFormat)
	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("decoding failed: %v", err), Timing: timing}
	}

	analyzeStart := time.Now()

	opts.SpecialState = capture.Detect(buf, capture.DefaultDetectOptions())

	summary, err := micdoctor.Analyze(buf.Samples, buf.SampleRate, opts)

	timing.AnalyzeMs = durationMs(time.Since(analyzeStart))
	timing.TotalMs = durationMs(time.Since(fileStart))

	if err != nil {
		return Record{File: filePath, Error: fmt.Sprintf("grading failed: %v", err), Timing: timing}
	}

	record := Record{
		File:       filePath,
		Analysis:   output.SummaryToMap(summary),
		Properties: output.PropertiesToMap(capture.Inspect(buf)),
		Timing:     timing,
	}

	probeJSON, err := json.Marshal(probeResult)
	if err == nil {
		record.Probe = probeJSON
	} else {
		record.ProbeError = "probe serialization failed"
	}

	return record
}

func durationMs(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}

func millisToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func collectAudioFiles(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if slices.Contains(audioExtensions, strings.ToLower(filepath.Ext(path))) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)

	return files, nil
}

func compressFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // reading our own output file
	if err != nil {
		return err
	}

	gzFile, err := os.Create(path + ".gz")
	if err != nil {
		return err
	}
	defer gzFile.Close()

	gzWriter := gzip.NewWriter(gzFile)

	if _, err := gzWriter.Write(data); err != nil {
		return err
	}

	return gzWriter.Close()
}

func redactProbe(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}

	var probe map[string]any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return raw
	}

	// Strip format.filename.
	if format, ok := probe["format"].(map[string]any); ok {
		delete(format, "filename")
	}

	redacted, err := json.Marshal(probe)
	if err != nil {
		return raw
	}

	return redacted
}
