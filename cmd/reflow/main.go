package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/formo/reflow"
	"github.com/tdewolff/argp"
)

type Render struct {
	Data     string `short:"d" desc:"JSON data sources file"`
	Config   string `short:"c" desc:"JSON components and bindings file"`
	Output   string `short:"o" desc:"Output file (default stdout)"`
	Template string `index:"0" desc:"Template SVG file"`
}

func main() {
	root := argp.NewCmd(&Render{}, "SVG template renderer with data-driven text reflow")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Render) Run() error {
	if cmd.Template == "" {
		return argp.ShowUsage
	}
	markup, err := os.ReadFile(cmd.Template)
	if err != nil {
		return err
	}

	data := reflow.DataSources{}
	if cmd.Data != "" {
		b, err := os.ReadFile(cmd.Data)
		if err != nil {
			return err
		}
		if err := json.Unmarshal(b, &data); err != nil {
			return fmt.Errorf("bad data: %w", err)
		}
	}

	cfg := &reflow.Config{}
	if cmd.Config != "" {
		b, err := os.ReadFile(cmd.Config)
		if err != nil {
			return err
		}
		if cfg, err = reflow.ParseConfig(b); err != nil {
			return err
		}
	}

	out, err := reflow.Render(context.Background(), string(markup), cfg.Bindings, cfg.Components, data, nil)
	if err != nil {
		return err
	}

	if cmd.Output == "" {
		fmt.Println(out)
		return nil
	}
	return os.WriteFile(cmd.Output, []byte(out), 0o644)
}
