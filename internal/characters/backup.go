package characters

import (
	_ "embed"
	"encoding/json"
	"github.com/OPSAF/Anime/internal/models"
	"slices"
	"sync"
)

//go:embed backup.json
var backupJSON []byte

var (
	backupOnce       sync.Once
	backupCharacters []models.Character
)

func loadBackup() {
	var list []models.Character
	if err := json.Unmarshal(backupJSON, &list); err != nil {
		// The file is embedded at build time, a broken file is a programming error.
		panic("characters: invalid backup.json: " + err.Error())
	}
	for i := range list {
		list[i].Source = models.ProvenanceBackup
		list[i].Hint = models.TruncateHint(list[i].Hint)
	}
	backupCharacters = list
}

// Backup returns the bundled characters. The pool is never empty.
func Backup() models.Pool {
	backupOnce.Do(loadBackup)
	return models.Pool{
		Source:     models.ProvenanceBackup,
		Characters: slices.Clone(backupCharacters),
	}
}
