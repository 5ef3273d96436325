package logger

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Logger struct {
	logger *logrus.Logger
	fields logrus.Fields
}

type LogLevel string

const (
	DebugLevel LogLevel = "debug"
	InfoLevel  LogLevel = "info"
	WarnLevel  LogLevel = "warn"
	ErrorLevel LogLevel = "error"
	FatalLevel LogLevel = "fatal"
)

type Config struct {
	Level      LogLevel `json:"level"`
	Format     string   `json:"format"` // json, text
	Output     string   `json:"output"` // stdout, stderr, file path
	TimeFormat string   `json:"time_format"`
	Caller     bool     `json:"caller"`
	Colors     bool     `json:"colors"`
}

func NewLogger(config *Config) (*Logger, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(string(config.Level))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if config.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: config.TimeFormat,
		})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: config.TimeFormat,
			ForceColors:     config.Colors,
			DisableColors:   !config.Colors,
		})
	}

	if config.Output == "stderr" {
		logger.SetOutput(os.Stderr)
	} else if config.Output == "stdout" || config.Output == "" {
		logger.SetOutput(os.Stdout)
	} else {
		file, err := os.OpenFile(config.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, err
		}
		logger.SetOutput(file)
	}

	logger.SetReportCaller(config.Caller)

	return &Logger{
		logger: logger,
		fields: make(logrus.Fields),
	}, nil
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	newFields := make(logrus.Fields)
	for k, v := range l.fields {
		newFields[k] = v
	}
	newFields[key] = value

	return &Logger{
		logger: l.logger,
		fields: newFields,
	}
}

func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	newFields := make(logrus.Fields)
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &Logger{
		logger: l.logger,
		fields: newFields,
	}
}

func (l *Logger) WithContext(ctx context.Context) *Logger {
	return l.WithFields(extractContextFields(ctx))
}

func (l *Logger) WithError(err error) *Logger {
	return l.WithField("error", err.Error())
}

func (l *Logger) WithUserID(userID primitive.ObjectID) *Logger {
	return l.WithField("user_id", userID.Hex())
}

func (l *Logger) WithProgramID(programID primitive.ObjectID) *Logger {
	return l.WithField("program_id", programID.Hex())
}

func (l *Logger) WithCode(code string) *Logger {
	return l.WithField("referral_code", code)
}

func (l *Logger) WithRequestID(requestID string) *Logger {
	return l.WithField("request_id", requestID)
}

func (l *Logger) Debug(msg string) {
	l.logger.WithFields(l.fields).Debug(msg)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Debugf(format, args...)
}

func (l *Logger) Info(msg string) {
	l.logger.WithFields(l.fields).Info(msg)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Infof(format, args...)
}

func (l *Logger) Warn(msg string) {
	l.logger.WithFields(l.fields).Warn(msg)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Warnf(format, args...)
}

func (l *Logger) Error(msg string) {
	l.logger.WithFields(l.fields).Error(msg)
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Errorf(format, args...)
}

func (l *Logger) Fatal(msg string) {
	l.logger.WithFields(l.fields).Fatal(msg)
}

func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.logger.WithFields(l.fields).Fatalf(format, args...)
}

// Structured logging for referral lifecycle events.

func (l *Logger) LogReferralEvent(codeID primitive.ObjectID, event string, details map[string]interface{}) {
	fields := map[string]interface{}{
		"code_id": codeID.Hex(),
		"event":   event,
		"type":    "referral_event",
	}

	for k, v := range details {
		fields[k] = v
	}

	l.WithFields(fields).Info("Referral event occurred")
}

func (l *Logger) LogPayoutEvent(payoutID primitive.ObjectID, event string, amount float64, currency string) {
	l.WithFields(map[string]interface{}{
		"payout_id": payoutID.Hex(),
		"event":     event,
		"amount":    amount,
		"currency":  currency,
		"type":      "payout_event",
	}).Info("Payout event occurred")
}

func (l *Logger) LogFraudEvent(codeID primitive.ObjectID, score int, flags []string) {
	l.WithFields(map[string]interface{}{
		"code_id": codeID.Hex(),
		"score":   score,
		"flags":   flags,
		"type":    "fraud_event",
	}).Warn("Suspicious referral click detected")
}

func (l *Logger) SetOutput(output io.Writer) {
	l.logger.SetOutput(output)
}

func (l *Logger) SetLevel(level LogLevel) {
	logrusLevel, err := logrus.ParseLevel(string(level))
	if err != nil {
		logrusLevel = logrus.InfoLevel
	}
	l.logger.SetLevel(logrusLevel)
}

func extractContextFields(ctx context.Context) map[string]interface{} {
	fields := make(map[string]interface{})

	if userID := ctx.Value("user_id"); userID != nil {
		if oid, ok := userID.(primitive.ObjectID); ok {
			fields["user_id"] = oid.Hex()
		} else if str, ok := userID.(string); ok {
			fields["user_id"] = str
		}
	}

	if requestID := ctx.Value("request_id"); requestID != nil {
		if str, ok := requestID.(string); ok {
			fields["request_id"] = str
		}
	}

	return fields
}
