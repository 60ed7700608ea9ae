package cmd

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/jimezsa/creatorleads/internal/seen"
)

type SeenCmd struct {
	Diff   SeenDiffCmd   `cmd:"" help:"Write leads not yet in the history (A-B) to JSON."`
	Update SeenUpdateCmd `cmd:"" help:"Merge new leads into the history JSON."`
}

type SeenDiffCmd struct {
	New   string `name:"new" required:"" help:"Path to new leads JSON file (A)."`
	Seen  string `name:"seen" required:"" help:"Path to lead history JSON file (B). Missing file is treated as empty."`
	Out   string `name:"out" required:"" help:"Output path for unseen leads JSON file (C)."`
	Stats bool   `name:"stats" help:"Print comparison stats."`
}

type SeenUpdateCmd struct {
	Seen  string `name:"seen" required:"" help:"Path to lead history JSON file (B). Missing file is treated as empty."`
	Input string `name:"input" required:"" help:"Path to input leads JSON file to merge into the history."`
	Out   string `name:"out" help:"Output path for the updated history (default: overwrite --seen)."`
	Stats bool   `name:"stats" help:"Print merge stats."`
}

func (c *SeenDiffCmd) Run(ctx *Context) error {
	newLeads, err := seen.ReadLeads(c.New)
	if err != nil {
		return eris.Wrap(err, "read --new")
	}
	history, err := seen.ReadLeadsAllowMissing(c.Seen)
	if err != nil {
		return eris.Wrap(err, "read --seen")
	}

	unseen, stats := seen.Diff(newLeads, history)
	if err := seen.WriteLeads(c.Out, unseen); err != nil {
		return eris.Wrap(err, "write --out")
	}

	if c.Stats {
		_, err := fmt.Fprintf(
			ctx.Out,
			"total_new=%d total_seen=%d invalid_skipped=%d unseen_emitted=%d\n",
			stats.TotalNew,
			stats.TotalSeen,
			stats.InvalidSkipped(),
			stats.Unseen,
		)
		return err
	}
	return nil
}

func (c *SeenUpdateCmd) Run(ctx *Context) error {
	history, err := seen.ReadLeadsAllowMissing(c.Seen)
	if err != nil {
		return eris.Wrap(err, "read --seen")
	}
	input, err := seen.ReadLeads(c.Input)
	if err != nil {
		return eris.Wrap(err, "read --input")
	}

	merged, stats := seen.Merge(history, input)
	out := firstNonEmpty(c.Out, c.Seen)
	if err := seen.WriteLeads(out, merged); err != nil {
		return eris.Wrap(err, "write --out")
	}

	if c.Stats {
		_, err := fmt.Fprintf(
			ctx.Out,
			"total_seen=%d total_input=%d invalid_skipped=%d added=%d total_out=%d\n",
			stats.TotalSeen,
			stats.TotalInput,
			stats.InvalidSkipped(),
			stats.Added,
			stats.TotalOut,
		)
		return err
	}
	return nil
}
