/*
DESCRIPTION
  config.go provides the run configuration of apc-match, built from defaults,
  an optional config file and command line flags.

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean)

  It is free software: you can redistribute it and/or modify them
  under the terms of the GNU General Public License as published by the
  Free Software Foundation, either version 3 of the License, or (at your
  option) any later version.

  It is distributed in the hope that it will be useful, but WITHOUT
  ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
  FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License
  for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt.  If not, see http://www.gnu.org/licenses.
*/

// Package config holds the configuration of a pipeline run. Values are taken
// from defaults, then from an optional config file of "key value" lines, then
// from command line flags, each overriding the last. Config file keys are the
// flag names.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/ausocean/utils/filemap"
	"github.com/ausocean/utils/logging"
	"github.com/ausocean/utils/sliceutils"

	"github.com/ausocean/apc/features"
)

// Modes select the stages that a run performs.
const (
	ModeLoad    = "load"    // Load and display the images.
	ModeMatch   = "match"   // As load, plus feature matching and result writing.
	ModeRectify = "rectify" // As match, plus chessboard rectification.
)

var modes = []string{ModeLoad, ModeMatch, ModeRectify}

// Defaults.
const (
	DefaultMode    = ModeRectify
	DefaultDelay   = time.Second
	DefaultLogPath = "/var/log/apc"
	defaultLevel   = logging.Debug
)

// Flag and config file keys.
const (
	KeyMode       = "mode"
	KeyDetector   = "detector"
	KeyExtractor  = "extractor"
	KeyMatcher    = "matcher"
	KeyDisplay    = "display"
	KeyDelay      = "delay"
	KeyReport     = "report"
	KeyConfigFile = "config"
	KeyLogLevel   = "LogLevel"
	KeyLogPath    = "LogPath"
)

// Number of positional arguments.
const numArgs = 3

var (
	ErrArgs       = errors.New("too few arguments")
	ErrUnknownKey = errors.New("unknown config key")
	ErrMode       = errors.New("unknown mode")
)

// Config is the configuration of a run.
type Config struct {
	Mode       string
	Detector   string
	Extractor  string
	Matcher    string
	Display    bool          // Show images in a window.
	Delay      time.Duration // Time each image is shown for.
	Report     bool          // Write a match report chart.
	ConfigFile string
	LogLevel   int
	LogPath    string

	// Positional arguments.
	Part1     string // Manifest of the part 1 images.
	Part2     string // Manifest of the part 2 images.
	OutputDir string
}

// Defaults returns the default configuration, with no positional arguments.
func Defaults() Config {
	return Config{
		Mode:      DefaultMode,
		Detector:  features.DefaultDetector,
		Extractor: features.DefaultExtractor,
		Matcher:   features.DefaultMatcher,
		Display:   true,
		Delay:     DefaultDelay,
		LogLevel:  int(defaultLevel),
		LogPath:   DefaultLogPath,
	}
}

// Usage returns the usage prompt for the program prog.
func Usage(prog string) string {
	return "\nFormat:\n\n./" + prog + " [part1TextFileDir] [part2TextFileDir] [dirToSaveFinalImages]\n\n"
}

// Parse builds the configuration of program prog from its command line
// arguments args, not including the program name. The usage prompt and flag
// errors are written to out. Parse returns ErrArgs if fewer than three
// positional arguments are given, and flag.ErrHelp if help was requested.
func Parse(prog string, args []string, out io.Writer) (Config, error) {
	c := Defaults()

	// Flags are parsed into a scratch copy and only those actually given
	// are applied, so that they override the config file.
	f := c
	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&f.Mode, KeyMode, c.Mode, "Stages to run: load, match or rectify")
	fs.StringVar(&f.Detector, KeyDetector, c.Detector, "Feature detector, one of "+strings.Join(features.Detectors(), ", "))
	fs.StringVar(&f.Extractor, KeyExtractor, c.Extractor, "Descriptor extractor, one of "+strings.Join(features.Extractors(), ", "))
	fs.StringVar(&f.Matcher, KeyMatcher, c.Matcher, "Descriptor matcher, one of "+strings.Join(features.Matchers(), ", "))
	fs.BoolVar(&f.Display, KeyDisplay, c.Display, "Show images in a window")
	fs.DurationVar(&f.Delay, KeyDelay, c.Delay, "Time each image is shown for")
	fs.BoolVar(&f.Report, KeyReport, c.Report, "Write a match report chart to the output directory")
	fs.StringVar(&f.ConfigFile, KeyConfigFile, c.ConfigFile, "Specifies config file")
	fs.IntVar(&f.LogLevel, KeyLogLevel, c.LogLevel, "Specifies log level")
	fs.StringVar(&f.LogPath, KeyLogPath, c.LogPath, "Specifies log path")
	fs.Usage = func() {
		fmt.Fprint(out, Usage(prog))
		fs.PrintDefaults()
	}

	err := fs.Parse(args)
	if err != nil {
		return c, err
	}

	if f.ConfigFile != "" {
		err = c.ReadFile(f.ConfigFile)
		if err != nil {
			return c, err
		}
	}

	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		err = c.Set(fl.Name, fl.Value.String())
	})
	if err != nil {
		return c, err
	}

	if fs.NArg() < numArgs {
		fmt.Fprint(out, Usage(prog))
		return c, ErrArgs
	}
	c.Part1, c.Part2, c.OutputDir = fs.Arg(0), fs.Arg(1), fs.Arg(2)
	return c, nil
}

// ReadFile applies the "key value" lines of the config file at path. Keys
// are applied in sorted order and the first bad key or value is returned.
func (c *Config) ReadFile(path string) error {
	m, err := filemap.ReadFrom(path, "\n", " ")
	if err != nil {
		return fmt.Errorf("could not read config file: %w", err)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		k = strings.TrimSpace(k)
		if k == "" || strings.HasPrefix(k, "#") {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		err = c.Set(k, strings.TrimSpace(m[k]))
		if err != nil {
			return fmt.Errorf("config file %s: %w", path, err)
		}
	}
	return nil
}

// Set sets the value of the field with the given key.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case KeyMode:
		c.Mode = value
	case KeyDetector:
		c.Detector = value
	case KeyExtractor:
		c.Extractor = value
	case KeyMatcher:
		c.Matcher = value
	case KeyDisplay:
		c.Display, err = strconv.ParseBool(value)
	case KeyDelay:
		c.Delay, err = time.ParseDuration(value)
	case KeyReport:
		c.Report, err = strconv.ParseBool(value)
	case KeyConfigFile:
		c.ConfigFile = value
	case KeyLogLevel:
		c.LogLevel, err = strconv.Atoi(value)
	case KeyLogPath:
		c.LogPath = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return nil
}

// Validate checks the mode and, for modes that match features, the names of
// the feature primitives.
func (c Config) Validate() error {
	if !sliceutils.ContainsString(modes, c.Mode) {
		return fmt.Errorf("%w: %q", ErrMode, c.Mode)
	}
	if c.Mode == ModeLoad {
		return nil
	}
	return features.ValidateNames(c.Detector, c.Extractor, c.Matcher)
}

// Matches reports whether the mode includes feature matching.
func (c Config) Matches() bool { return c.Mode == ModeMatch || c.Mode == ModeRectify }

// Rectifies reports whether the mode includes chessboard rectification.
func (c Config) Rectifies() bool { return c.Mode == ModeRectify }
