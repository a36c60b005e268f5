package config

const (
	envDataDir      = "DATA_DIR"
	envVerifySample = "VERIFY_SAMPLE_SIZE"

	defaultDataDir      = "data"
	defaultVerifySample = 25
)

// StorageConfig controls the file sink and read-back verification.
type StorageConfig struct {
	DataDir          string
	VerifySampleSize int
}

func loadStorage() StorageConfig {
	return StorageConfig{
		DataDir:          envOrDefault(envDataDir, defaultDataDir),
		VerifySampleSize: intEnvOrDefault(envVerifySample, defaultVerifySample),
	}
}
