package config

import "errors"

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVision(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateVision() error {
	if c.Vision.BaseURL == "" {
		return errors.New("vision.base_url must be set")
	}
	if c.Vision.TimeoutSeconds <= 0 {
		return errors.New("vision.timeout_seconds must be positive")
	}
	if c.Vision.MaxLabels <= 0 {
		return errors.New("vision.max_labels must be positive")
	}
	if c.Vision.MaxFaces <= 0 {
		return errors.New("vision.max_faces must be positive")
	}
	if !c.Vision.OfflineMode && c.Vision.CredentialsPath == "" {
		return errors.New("vision.credentials_path is required unless vision.offline_mode is enabled")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.PacingDelayMS < 0 {
		return errors.New("workflow.pacing_delay_ms must not be negative")
	}
	if c.Workflow.Workers <= 0 {
		return errors.New("workflow.workers must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return errors.New("logging.format must be console or json")
	}
	return nil
}
