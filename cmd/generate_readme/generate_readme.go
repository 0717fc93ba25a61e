package main

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"text/template"

	"github.com/keshon/qop/internal/command"
	_ "github.com/keshon/qop/internal/command/apply"
	_ "github.com/keshon/qop/internal/command/autocomplete"
	_ "github.com/keshon/qop/internal/command/diff"
	_ "github.com/keshon/qop/internal/command/reverse"
	_ "github.com/keshon/qop/internal/command/snapshot"
	_ "github.com/keshon/qop/internal/command/status"
	"github.com/keshon/qop/internal/fs"
	"github.com/keshon/qop/internal/util"
)

const defaultTemplate = `# qop

Snapshot a directory tree, then carry line edits around as TOML patches.

## Commands

{{ .CommandSections }}`

type section struct {
	Name    string
	Usage   string
	Aliases []string
	Help    string
}

var sectionTemplate = template.Must(template.New("section").Parse(
	"### {{ .Name }}\n```\nqop {{ .Usage }}\n{{ if .Aliases }}aliases: {{ range $i, $a := .Aliases }}{{ if $i }}, {{ end }}{{ $a }}{{ end }}\n{{ end }}\n{{ .Help }}\n```\n\n",
))

func main() {
	text := defaultTemplate
	if data, err := os.ReadFile("README.md.tmpl"); err == nil {
		text = string(data)
	}

	tpl, err := template.New("readme").Parse(text)
	if err != nil {
		fmt.Printf("Failed to parse template: %v\n", err)
		os.Exit(1)
	}

	commands := command.AllCommands()
	sort.Slice(commands, func(i, j int) bool {
		return commands[i].Name() < commands[j].Name()
	})

	var sections bytes.Buffer
	for _, cmd := range commands {
		err := sectionTemplate.Execute(&sections, section{
			Name:    cmd.Name(),
			Usage:   cmd.Usage(),
			Aliases: cmd.Aliases(),
			Help:    cmd.Help(),
		})
		if err != nil {
			fmt.Printf("Failed to render %s: %v\n", cmd.Name(), err)
			os.Exit(1)
		}
	}

	var out bytes.Buffer
	if err := tpl.Execute(&out, map[string]string{"CommandSections": sections.String()}); err != nil {
		fmt.Printf("Failed to render template: %v\n", err)
		os.Exit(1)
	}
	if err := util.WriteFileAtomic(fs.NewOSFS(), "README.md", out.Bytes(), 0o644); err != nil {
		fmt.Printf("Failed to write README.md: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("README.md generated successfully")
}
