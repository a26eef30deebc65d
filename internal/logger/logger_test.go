package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	logger, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(logger)
	suite.NotNil(logger.Logger)
	suite.True(logger.Core().Enabled(zapcore.InfoLevel))
	suite.False(logger.Core().Enabled(zapcore.DebugLevel))
}

func (suite *LoggerTestSuite) TestNewLoggerWithLevel() {
	tests := []struct {
		name    string
		level   string
		enabled zapcore.Level
		hidden  zapcore.Level
	}{
		{name: "debug", level: "debug", enabled: zapcore.DebugLevel, hidden: zapcore.DebugLevel - 1},
		{name: "warn", level: "warn", enabled: zapcore.WarnLevel, hidden: zapcore.InfoLevel},
		{name: "unknown falls back to info", level: "loud", enabled: zapcore.InfoLevel, hidden: zapcore.DebugLevel},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			logger, err := NewLoggerWithLevel(tc.level)
			suite.Require().NoError(err)
			suite.True(logger.Core().Enabled(tc.enabled))
			suite.False(logger.Core().Enabled(tc.hidden))
		})
	}
}

func (suite *LoggerTestSuite) TestLoggerSyncNilLogger() {
	logger := &Logger{Logger: nil}

	err := logger.Sync()
	suite.NoError(err)
}

func (suite *LoggerTestSuite) TestNopLogger() {
	logger := NewNopLogger()
	suite.NotNil(logger.Logger)

	logger.Info("discarded", zap.String("symbol", "AAPL"))
	suite.NoError(logger.Sync())
}

func (suite *LoggerTestSuite) TestNamed() {
	var nilLogger *Logger
	suite.NotNil(nilLogger.Named("runner").Logger)

	logger := NewNopLogger().Named("runner")
	suite.NotNil(logger.Logger)
}
