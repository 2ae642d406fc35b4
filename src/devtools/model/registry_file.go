// Package model contains the repository layer models.
package model

// RegistryFile is the repository layer model of the persisted project registry.
type RegistryFile struct {
	Projects map[string]RegistryProject `toml:"projects"`
}

// RegistryProject is one persisted project entry, keyed by its root in RegistryFile.
type RegistryProject struct {
	Root         string   `toml:"root"`
	IgnoreCrates []string `toml:"ignore_crates"`
}
