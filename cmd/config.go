package cmd

import (
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "twinpick"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	inputFlagName     = "input"
	hashFlagName      = "hash"
	thresholdFlagName = "threshold"
	scanURLFlagName   = "scan-url"
	deleteModeFlag    = "delete-mode"
	deleteURLFlagName = "delete-url"
	rateLimitFlagName = "rate-limit"
	logFlagName       = "log"
	verboseFlagName   = "verbose"

	smallerResolutionFlagName = "smaller-resolution"
	smallerSizeFlagName       = "smaller-size"
	olderFlagName             = "older"
	minSimilarityFlagName     = "min-similarity"
	sameFilenameFlagName      = "same-filename"

	scanURLKey       = "scan.url"
	scanHashKey      = "scan.hash_type"
	scanThresholdKey = "scan.threshold"
	scanInputKey     = "scan.input"
	deleteModeKey    = "delete.mode"
	deleteURLKey     = "delete.url"
	deleteRateKey    = "delete.rate_limit"

	selectResolutionKey = "select.smaller_resolution"
	selectSizeKey       = "select.smaller_size"
	selectOlderKey      = "select.older_mod_time"
	selectMinSimKey     = "select.min_similarity"
	selectSameNameKey   = "select.same_filename"

	deleteModeLocal  = "local"
	deleteModeRemote = "remote"
	deleteModeDryRun = "dry-run"

	defaultScanURL    = "http://127.0.0.1:5000"
	defaultHashType   = m.HashPerceptual
	defaultThreshold  = 90.0
	defaultDeleteMode = deleteModeLocal

	envPrefix = "TWINPICK"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".twinpick.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	// A missing .env is the common case.
	_ = godotenv.Load()

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(scanURLKey, defaultScanURL)
	viper.SetDefault(scanHashKey, defaultHashType)
	viper.SetDefault(scanThresholdKey, defaultThreshold)
	viper.SetDefault(scanInputKey, "")
	viper.SetDefault(deleteModeKey, defaultDeleteMode)
	viper.SetDefault(deleteURLKey, "")
	viper.SetDefault(deleteRateKey, 0.0)

	viper.SetDefault(selectResolutionKey, false)
	viper.SetDefault(selectSizeKey, false)
	viper.SetDefault(selectOlderKey, false)
	viper.SetDefault(selectMinSimKey, 0.0)
	viper.SetDefault(selectSameNameKey, false)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	// Without a twinpick.yaml the defaults, env and flags apply.
	_ = viper.ReadInConfig()
}

// ruleConfigFromViper builds the auto-select criteria from config, env and
// bound flags. A non-positive minimum similarity means "no gate".
func ruleConfigFromViper() m.RuleConfig {
	config := m.RuleConfig{
		PreferSmallerResolution: viper.GetBool(selectResolutionKey),
		PreferSmallerFileSize:   viper.GetBool(selectSizeKey),
		PreferOlderModTime:      viper.GetBool(selectOlderKey),
		RequireSameFilename:     viper.GetBool(selectSameNameKey),
	}

	if minSimilarity := viper.GetFloat64(selectMinSimKey); minSimilarity > 0 {
		config.MinSimilarity = &minSimilarity
	}

	return config
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose || viper.GetBool(logVerboseKey) {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
