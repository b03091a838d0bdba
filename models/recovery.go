package models

// RecoveryArtifact is the locally stored security-question recovery data.
//
// WrappedPassword is the master password encrypted under the normalized
// answer. SealedAnswer is the normalized answer encrypted under the master
// password; it allows the artifact to be re-wrapped when the master password
// changes. SealedAnswer is empty for artifacts written by older releases.
type RecoveryArtifact struct {
	Question        string
	WrappedPassword string
	SealedAnswer    string
}

// SetupResult reports the outcome of the mandatory recovery setup.
// The local part always succeeded when a SetupResult is returned; Synced
// tells whether the registration endpoint accepted the data.
type SetupResult struct {
	Synced  bool
	SyncErr error
}
