// internal/config/secrets.go
//
// Vault reference resolution for configuration values.
//
// Context
// -------
// Operators may write `vault:secret/showcase/prod#db_password` anywhere a
// secret string is accepted (database.password, admin.password).  After
// unmarshal and validation, `resolveSecrets` swaps each reference for the
// plain value fetched from the KV-v2 engine via `internal/vault`.
//
// The Vault client is constructed lazily—configs with no `vault:`
// references never touch the network, which keeps dev setups and unit
// tests free of a running Vault.
//
// Notes
// -----
//   • Reference format is `vault:<mount/path>#<key>`.
//   • Values are cached inside the client for one hour.
//   • Oxford commas, two spaces after periods.

package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/showcase/internal/vault"
)

const vaultPrefix = "vault:"

// resolveSecrets replaces vault: references in cfg with their plain
// values.  No-op when the config carries none.
func resolveSecrets(cfg *Config) error {
	targets := []*string{
		&cfg.Database.Password,
		&cfg.Admin.Password,
	}

	var cli *vault.Client
	for _, t := range targets {
		if !strings.HasPrefix(*t, vaultPrefix) {
			continue
		}

		if cli == nil {
			var err error
			cli, err = vault.New(context.Background(), zap.S().Infof)
			if err != nil {
				return fmt.Errorf("vault client: %w", err)
			}
		}

		val, err := lookup(cli, strings.TrimPrefix(*t, vaultPrefix))
		if err != nil {
			return err
		}
		*t = val
	}
	return nil
}

// lookup splits "mount/path#key" and fetches the value.
func lookup(cli *vault.Client, ref string) (string, error) {
	path, key, ok := strings.Cut(ref, "#")
	if !ok {
		return "", fmt.Errorf("malformed vault reference %q (want path#key)", ref)
	}
	return cli.GetKV(context.Background(), path, key, time.Hour)
}
