package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"linkmend.dev/pkg/linkmend/internal/domain/patterns"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "linkmend"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	outputFlagName          = "output"
	registryFlagName        = "registry"
	excludeFlagName         = "exclude"
	extensionFlagName       = "extension"
	verboseFlagName         = "verbose"
	fixParallelFlagName     = "parallel"
	dryRunFlagName          = "dry-run"
	requireRegistryFlagName = "require-registry"
	checkReportFlagName     = "report"
	indexRootFlagName       = "root"

	registryConfigKey        = "registry.listing"
	registryRequiredKey      = "registry.required"
	excludeConfigKey         = "paths.exclude"
	extensionsConfigKey      = "paths.extensions"
	rootConfigKey            = "paths.root"
	fixParallelConfigKey     = "fix.parallel"
	patternSchemeKey         = "patterns.scheme"
	patternPathMarkerKey     = "patterns.path_marker"
	patternAbsolutePrefixKey = "patterns.absolute_prefix"

	defaultReportsDir      = ".linkmend-reports"
	defaultRegistryListing = "file_list.md"
	defaultRoot            = "."
	defaultFixParallel     = 1
	defaultPatternScheme   = "mdc"

	envPrefix = "LINKMEND"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".linkmend.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

// defaultExtensions are the file extensions treated as documentation.
var defaultExtensions = []string{"md", "mdc"}

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultReportsDir)
	viper.SetDefault(registryConfigKey, defaultRegistryListing)
	viper.SetDefault(registryRequiredKey, false)
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(extensionsConfigKey, defaultExtensions)
	viper.SetDefault(rootConfigKey, defaultRoot)
	viper.SetDefault(fixParallelConfigKey, defaultFixParallel)
	viper.SetDefault(patternSchemeKey, defaultPatternScheme)
	viper.SetDefault(patternPathMarkerKey, "")
	viper.SetDefault(patternAbsolutePrefixKey, "")

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
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
	if verbose {
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

// patternOptionsFromConfig builds the catalog options from the resolved
// configuration.
func patternOptionsFromConfig() patterns.Options {
	return patterns.Options{
		Extensions:     viper.GetStringSlice(extensionsConfigKey),
		Scheme:         viper.GetString(patternSchemeKey),
		PathMarker:     viper.GetString(patternPathMarkerKey),
		AbsolutePrefix: viper.GetString(patternAbsolutePrefixKey),
	}
}
