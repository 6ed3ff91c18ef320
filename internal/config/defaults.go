package config

const (
	defaultLogDir               = "~/.local/share/scrapedata/logs"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultVisionBaseURL        = "https://vision.googleapis.com/v1"
	defaultVisionCredentials    = "~/.config/scrapedata/google_cloud_credentials.json"
	defaultVisionTimeoutSeconds = 30
	defaultVisionMaxLabels      = 10
	defaultVisionMaxFaces       = 5
	defaultPacingDelayMS        = 100
	defaultWorkers              = 1
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Vision: Vision{
			CredentialsPath: defaultVisionCredentials,
			BaseURL:         defaultVisionBaseURL,
			TimeoutSeconds:  defaultVisionTimeoutSeconds,
			MaxLabels:       defaultVisionMaxLabels,
			MaxFaces:        defaultVisionMaxFaces,
		},
		Workflow: Workflow{
			PacingDelayMS: defaultPacingDelayMS,
			Workers:       defaultWorkers,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
