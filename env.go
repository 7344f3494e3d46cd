package cup

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// init automatically loads environment variables from .env files.
// It searches in the current directory and parent directories.
func init() {
	_ = LoadEnv()
}

// LoadEnv loads environment variables from .env files.
// It searches for .env in the current directory and up to 3 parent directories.
//
// The function silently ignores missing .env files, making it safe to call
// in production where environment variables are set differently.
//
// Returns an error only if a .env file exists but cannot be read.
func LoadEnv() error {
	if err := loadEnvFile(".env"); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil
	}

	dir := wd
	for i := 0; i < 3; i++ {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent

		envPath := filepath.Join(dir, ".env")
		if err := loadEnvFile(envPath); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

func loadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}
	return godotenv.Load(path)
}

// cdpEnv reads CUP_CDP_HOST / CUP_CDP_PORT, the only two environment
// variables the core itself consults (web-adapter connection parameters).
func cdpEnv() (host, port string) {
	return os.Getenv("CUP_CDP_HOST"), os.Getenv("CUP_CDP_PORT")
}
