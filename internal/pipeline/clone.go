package pipeline

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Clone removes the data folder and clones the two source repositories
// into it. A repository already present at its destination is left alone.
func (b *Builder) Clone(ctx context.Context) error {
	if err := os.RemoveAll(b.cfg.Repo.Path); err != nil {
		return fmt.Errorf("failed to remove data folder %s: %w", b.cfg.Repo.Path, err)
	}
	b.log.Info().Str("path", b.cfg.Repo.Path).Msg("removed existing data folder")

	repos := []struct {
		url  string
		dest string
	}{
		{b.cfg.Repo.EvedURL, filepath.Join(b.cfg.Repo.Path, "eved")},
		{b.cfg.Repo.VedURL, filepath.Join(b.cfg.Repo.Path, "ved")},
	}
	for _, repo := range repos {
		if err := b.cloneRepo(ctx, repo.url, repo.dest); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes the data folder tree. The database file is kept: it lives
// outside the repository path by default.
func (b *Builder) Clean() error {
	b.log.Info().Str("path", b.cfg.Repo.Path).Msg("cleaning data folder")
	if err := os.RemoveAll(b.cfg.Repo.Path); err != nil {
		return fmt.Errorf("failed to clean data folder %s: %w", b.cfg.Repo.Path, err)
	}
	return nil
}

func (b *Builder) cloneRepo(ctx context.Context, url, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		b.log.Info().Str("dest", dest).Msg("repository already present, skipping clone")
		return nil
	}

	b.log.Info().Str("url", url).Str("dest", dest).Msg("cloning repository")
	cmd := exec.CommandContext(ctx, "git", "clone", url, dest)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git clone %s failed: %w: %s", url, err, output)
	}
	return nil
}
