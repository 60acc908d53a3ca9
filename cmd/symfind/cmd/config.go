package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configBaseName   = ".symfind"
	configFolderPath = "."
	envPrefix        = "SYMFIND"

	colorKey       = "color"
	langKey        = "lang"
	systemDirsKey  = "include.system_dirs"
	grammarDirsKey = "grammar.dirs"

	logLevelKey      = "log.level"
	logFileKey       = "log.file"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultColor         = "always"
	defaultLogLevel      = "warn"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// loadConfig builds the viper instance for one run. An explicit path must
// exist; the default .symfind.yaml is optional.
func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault(colorKey, defaultColor)
	v.SetDefault(langKey, "")
	v.SetDefault(systemDirsKey, []string{})
	v.SetDefault(grammarDirsKey, []string{})
	v.SetDefault(logLevelKey, defaultLogLevel)
	v.SetDefault(logFileKey, "")
	v.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	v.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	v.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	v.SetDefault(logCompressKey, defaultLogCompress)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
		return v, nil
	}

	v.SetConfigName(configBaseName)
	v.AddConfigPath(configFolderPath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	return v, nil
}

func parseLogLevel(value string) (zerolog.Level, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return zerolog.WarnLevel, nil
	}
	if value == "warning" {
		value = "warn"
	}
	return zerolog.ParseLevel(value)
}

// configureLogger points the global zerolog logger at stderr, or at a
// rotated file when log.file is set. By default it logs at warn; verbose
// logs at debug. The returned closer flushes the log file.
func configureLogger(v *viper.Viper, verbose bool, stderr io.Writer) (io.Closer, error) {
	level := zerolog.DebugLevel
	if !verbose {
		var err error
		level, err = parseLogLevel(v.GetString(logLevelKey))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", logLevelKey, err)
		}
	}

	var (
		out    io.Writer
		closer io.Closer = io.NopCloser(nil)
	)
	if file := strings.TrimSpace(v.GetString(logFileKey)); file != "" {
		lj := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    v.GetInt(logMaxSizeKey),
			MaxBackups: v.GetInt(logMaxBackupsKey),
			MaxAge:     v.GetInt(logMaxAgeKey),
			Compress:   v.GetBool(logCompressKey),
		}
		out, closer = lj, lj
	} else {
		out = zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.TimeOnly, NoColor: !isTerminal(stderr)}
	}

	log.Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return closer, nil
}
