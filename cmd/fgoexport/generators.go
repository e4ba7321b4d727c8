package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/udisondev/fgoexport/internal/atlas"
	"github.com/udisondev/fgoexport/internal/export"
)

func generateServants(ctx context.Context, p *pipeline) error {
	file := p.cfg.Files.ServantExport
	raw, err := p.fetcher.Fetch(ctx, p.cfg.ExportURL(file), file)
	if err != nil {
		return fmt.Errorf("fetching servants: %w", err)
	}

	servants, err := atlas.BuildServants(raw, p.cfg.AtlasOptions())
	if err != nil {
		return fmt.Errorf("building servants: %w", err)
	}

	if err := export.WriteJSON(filepath.Join(p.cfg.OutputDir, p.cfg.Files.ServantOutput), servants); err != nil {
		return err
	}

	if p.repo != nil {
		if err := p.repo.SaveServants(ctx, servants); err != nil {
			return fmt.Errorf("storing servants: %w", err)
		}
	}
	return nil
}

func generateMysticCodes(ctx context.Context, p *pipeline) error {
	file := p.cfg.Files.MysticCodeExport
	raw, err := p.fetcher.Fetch(ctx, p.cfg.ExportURL(file), file)
	if err != nil {
		return fmt.Errorf("fetching mystic codes: %w", err)
	}

	codes, err := atlas.BuildMysticCodes(raw, p.cfg.AtlasOptions())
	if err != nil {
		return fmt.Errorf("building mystic codes: %w", err)
	}

	if err := export.WriteJSON(filepath.Join(p.cfg.OutputDir, p.cfg.Files.MysticCodeOutput), codes); err != nil {
		return err
	}

	if p.repo != nil {
		if err := p.repo.SaveMysticCodes(ctx, codes); err != nil {
			return fmt.Errorf("storing mystic codes: %w", err)
		}
	}
	return nil
}
