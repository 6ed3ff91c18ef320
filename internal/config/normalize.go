package config

import "strings"

// normalize expands paths and trims free-form string fields so the rest
// of the pipeline can use values verbatim.
func (c *Config) normalize() error {
	var err error

	if c.Paths.BasePath = strings.TrimSpace(c.Paths.BasePath); c.Paths.BasePath != "" {
		if c.Paths.BasePath, err = expandPath(c.Paths.BasePath); err != nil {
			return err
		}
	}
	if c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir); c.Paths.LogDir != "" {
		if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
			return err
		}
	}
	if c.Vision.CredentialsPath = strings.TrimSpace(c.Vision.CredentialsPath); c.Vision.CredentialsPath != "" {
		if c.Vision.CredentialsPath, err = expandPath(c.Vision.CredentialsPath); err != nil {
			return err
		}
	}

	c.Vision.BaseURL = strings.TrimRight(strings.TrimSpace(c.Vision.BaseURL), "/")
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	companies := make([]string, 0, len(c.Classifier.ExtraUtilityCompanies))
	for _, name := range c.Classifier.ExtraUtilityCompanies {
		if name = strings.TrimSpace(name); name != "" {
			companies = append(companies, name)
		}
	}
	c.Classifier.ExtraUtilityCompanies = companies

	return nil
}
