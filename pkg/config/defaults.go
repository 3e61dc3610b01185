package config

import "github.com/rocksolid/rocksolid/pkg/source"

const (
	defaultExerciseURL = source.DefaultExerciseURL
	defaultYogaBase    = source.DefaultYogaBaseURL

	defaultStorageDriver = StorageDriverSQLite

	defaultAPIListen       = ":8081"
	defaultClientAPITarget = "http://localhost:8081"

	defaultSearchLimit = 200

	defaultKafkaTopic = "rocksolid.routines"
)

// Storage driver names accepted by storage.driver.
const (
	StorageDriverMemory    = "inmemory"
	StorageDriverSQLite    = "sqlite"
	StorageDriverPostgres  = "postgres"
	StorageDriverFirestore = "firestore"
)

// StorageDrivers returns the recognized storage driver names.
func StorageDrivers() []string {
	return []string{StorageDriverMemory, StorageDriverSQLite, StorageDriverPostgres, StorageDriverFirestore}
}

// IsValidStorageDriver reports whether name is a recognized storage driver.
func IsValidStorageDriver(name string) bool {
	for _, d := range StorageDrivers() {
		if d == name {
			return true
		}
	}
	return false
}

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		Sources: SourcesConfig{
			ExerciseURL: defaultExerciseURL,
			YogaBase:    defaultYogaBase,
		},
		Storage: StorageConfig{
			Driver: defaultStorageDriver,
		},
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Client: ClientConfig{
			APITarget: defaultClientAPITarget,
		},
		Search: SearchConfig{
			Limit: defaultSearchLimit,
		},
		EventStream: EventStreamConfig{
			KafkaTopic: defaultKafkaTopic,
		},
	}
}
