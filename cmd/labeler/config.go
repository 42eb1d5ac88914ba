package main

import (
	"encoding/json"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
)

// JSONConfig holds the optional config-file form of the labeler's flags.
// Flags given on the command line win over config file values.
type JSONConfig struct {
	ConfigPath string

	Project      string `json:"project"`
	Port         int    `json:"port"`
	ImagePath    string `json:"image_path"`
	ManifestPath string `json:"manifest"`
	OutputPath   string `json:"output"`
	LabelsPath   string `json:"labels"`
	Scheme       string `json:"scheme"`
	MultiMode    bool   `json:"multi"`
}

func ParseJSONConfigFromPath(path string) (JSONConfig, error) {
	out := JSONConfig{ConfigPath: path}

	f, err := os.Open(path)
	if err != nil {
		return out, pfx.Err(err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&out)
	if err != nil {
		if e, ok := err.(*json.SyntaxError); ok {
			log.Printf("syntax error at byte offset %d", e.Offset)
			return out, pfx.Err(err)
		}

		return out, pfx.Err(err)
	}

	// Interpret ~ if present
	out.ConfigPath = expandHomeDir(out.ConfigPath)
	out.ImagePath = expandHomeDir(out.ImagePath)
	out.ManifestPath = expandHomeDir(out.ManifestPath)
	out.OutputPath = expandHomeDir(out.OutputPath)
	out.LabelsPath = expandHomeDir(out.LabelsPath)

	return out, nil
}

// Via https://stackoverflow.com/a/17617721/199475
func expandHomeDir(path string) string {

	usr, err := user.Current()
	if err != nil {
		return path
	}

	dir := usr.HomeDir

	if path == "~" {
		// In case of "~", which won't be caught by the "else if"
		path = dir
	} else if strings.HasPrefix(path, "~/") {
		// Use strings.HasPrefix so we don't match paths like
		// "/something/~/something/"
		path = filepath.Join(dir, path[2:])
	}

	return path
}
