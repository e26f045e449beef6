/*

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package logging

import (
	"io"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Structured logging keys.
const (
	Process      = "process"
	Fqn          = "fqn"
	Region       = "region"
	RegionRoot   = "region_root"
	RegionCount  = "region_count"
	LookupResult = "lookup_result"
	ConfigFile   = "config_file"
)

// ParseLevel maps the DEBUG, INFO, WARNING and ERROR level names to zap levels.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel, nil
	case "", "INFO":
		return zapcore.InfoLevel, nil
	case "WARNING", "WARN":
		return zapcore.WarnLevel, nil
	case "ERROR":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, errors.Errorf("unknown log level %q, expected one of DEBUG, INFO, WARNING, ERROR", level)
}

// New returns a zap backed logr.Logger writing to w. DEBUG uses the human
// readable development encoding, every other level logs sampled JSON.
func New(w io.Writer, level string) (logr.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}

	sink := zapcore.AddSync(w)
	opts := []zap.Option{zap.AddStacktrace(zap.ErrorLevel), zap.ErrorOutput(sink)}

	var enc zapcore.Encoder
	if lvl == zapcore.DebugLevel {
		enc = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		opts = append(opts, zap.Development())
	} else {
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		opts = append(opts, zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewSampler(core, time.Second, 100, 100)
		}))
	}

	zlog := zap.New(zapcore.NewCore(enc, sink, zap.NewAtomicLevelAt(lvl)), opts...)
	return zapr.NewLogger(zlog), nil
}
