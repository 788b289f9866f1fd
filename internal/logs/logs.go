// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package logs wires every subsystem logger to a single rotating backend,
// following the teacher's per-subsystem logger.Get/SetLogLevel idiom.
package logs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter implements an io.Writer that outputs to both standard output and
// the write-end pipe of an initialized log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if LogRotator != nil {
		LogRotator.Write(p)
	}
	return len(p), nil
}

var backendLog = btclog.NewBackend(logWriter{})

// LogRotator is the logging output. It should be closed on application
// shutdown. It is nil until InitLogRotator is called.
var LogRotator *rotator.Rotator

// Subsystem tags registered with this backend. Package mining logs under
// SubsystemAssembler, package mempool under SubsystemMempool and util/locks
// under SubsystemUtil; the other mining component tags are registered but
// no package logs under them.
const (
	SubsystemAccountant = "ACCT"
	SubsystemIndex      = "MIDX"
	SubsystemSelector   = "SLCT"
	SubsystemCoinbase   = "CBLD"
	SubsystemAssembler  = "ASMB"
	SubsystemBroadcast  = "BCST"
	SubsystemMempool    = "TXMP"
	SubsystemUtil       = "UTIL"
)

var subsystemLoggers = map[string]btclog.Logger{
	SubsystemAccountant: backendLog.Logger(SubsystemAccountant),
	SubsystemIndex:      backendLog.Logger(SubsystemIndex),
	SubsystemSelector:   backendLog.Logger(SubsystemSelector),
	SubsystemCoinbase:   backendLog.Logger(SubsystemCoinbase),
	SubsystemAssembler:  backendLog.Logger(SubsystemAssembler),
	SubsystemBroadcast:  backendLog.Logger(SubsystemBroadcast),
	SubsystemMempool:    backendLog.Logger(SubsystemMempool),
	SubsystemUtil:       backendLog.Logger(SubsystemUtil),
}

// Logger returns the logger registered for the given subsystem tag,
// dynamically creating one from the shared backend if it isn't already
// registered.
func Logger(subsystemTag string) btclog.Logger {
	if logger, ok := subsystemLoggers[subsystemTag]; ok {
		return logger
	}
	logger := backendLog.Logger(subsystemTag)
	subsystemLoggers[subsystemTag] = logger
	return logger
}

// InitLogRotator initializes the logging rotator to write logs to logFile
// and create roll files in the same directory. It must be called before the
// package-global LogRotator variable is used.
func InitLogRotator(logFile string) {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %s\n", err)
		os.Exit(1)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create file rotator: %s\n", err)
		os.Exit(1)
	}
	LogRotator = r
}

// SetLogLevel sets the logging level for the provided subsystem. Invalid
// subsystems are ignored.
func SetLogLevel(subsystemTag, logLevel string) {
	logger, ok := subsystemLoggers[subsystemTag]
	if !ok {
		return
	}
	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// SetLogLevels sets the log level for every subsystem logger.
func SetLogLevels(logLevel string) {
	for subsystemTag := range subsystemLoggers {
		SetLogLevel(subsystemTag, logLevel)
	}
}

// SupportedSubsystems returns a sorted slice of the supported subsystem tags.
func SupportedSubsystems() []string {
	subsystems := make([]string, 0, len(subsystemLoggers))
	for tag := range subsystemLoggers {
		subsystems = append(subsystems, tag)
	}
	sort.Strings(subsystems)
	return subsystems
}

// ParseAndSetDebugLevels attempts to parse the specified debug level string
// and sets the levels accordingly. debugLevel is either a single level
// applied to every subsystem, or a comma-separated list of TAG=level pairs.
func ParseAndSetDebugLevels(debugLevel string) error {
	if !strings.Contains(debugLevel, ",") && !strings.Contains(debugLevel, "=") {
		if !validLogLevel(debugLevel) {
			return fmt.Errorf("the specified debug level [%s] is invalid", debugLevel)
		}
		SetLogLevels(debugLevel)
		return nil
	}

	for _, logLevelPair := range strings.Split(debugLevel, ",") {
		if !strings.Contains(logLevelPair, "=") {
			return fmt.Errorf("the specified debug level contains an invalid subsystem/level pair [%s]", logLevelPair)
		}

		fields := strings.SplitN(logLevelPair, "=", 2)
		subsysID, logLevel := fields[0], fields[1]

		if _, ok := subsystemLoggers[subsysID]; !ok {
			return fmt.Errorf("the specified subsystem [%s] is invalid -- supported subsystems %s",
				subsysID, strings.Join(SupportedSubsystems(), ", "))
		}
		if !validLogLevel(logLevel) {
			return fmt.Errorf("the specified debug level [%s] is invalid", logLevel)
		}
		SetLogLevel(subsysID, logLevel)
	}
	return nil
}

func validLogLevel(logLevel string) bool {
	switch logLevel {
	case "trace", "debug", "info", "warn", "error", "critical":
		return true
	}
	return false
}
