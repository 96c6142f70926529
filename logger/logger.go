// Copyright © 2024 The ECPP Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logger holds the process-wide structured logger the proof
// driver traces to: stage escalations, discriminant invalidations, and
// certificate fingerprints. The default is log.Discard(), so a library
// caller sees nothing unless it installs a logger; how much the driver
// writes is governed separately by the proof configuration's verbosity
// level, which only selects among trace lines and never changes results.
package logger

import "github.com/getamis/sirius/log"

var logger = log.Discard()

// Logger returns the logger proof diagnostics are written to.
func Logger() log.Logger {
	return logger
}

// SetLogger replaces the diagnostics logger.
func SetLogger(l log.Logger) {
	logger = l
}

// SetVerbosity installs a logger appropriate for a proof verbosity
// level: 0 discards everything, anything higher traces to a named
// sirius logger. The driver decides per-line which verbosity threshold
// a trace needs, so the sink here is just on or off.
func SetVerbosity(v int) {
	if v <= 0 {
		logger = log.Discard()
		return
	}
	logger = log.New("service", "ecpp")
}
