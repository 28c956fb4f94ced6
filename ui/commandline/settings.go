// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package commandline

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// Settings maps setting names to their values. The default values, set before parsing,
// define the type to which the user's strings are parsed.
type Settings map[string]any

// ParseSettings from settings -- typically the contents of a flag set by the user.
// The settings are a list separated by ";": e.g.: "runs=20;sizes=100x100,1000x1000".
//
// All the settings must already have default values in s, which define their types.
// For integer types, "_" is removed: it allows one to enter large numbers using it as a separator, like
// in Go. E.g.: 1_000_000 = 1000000.
//
// A setting "file:<path>" reads more settings from the file, one or more per line. Lines starting
// with "#" are ignored.
//
// It returns the names of the settings changed, in order.
func ParseSettings(s Settings, settings string) (settingsSet []string, err error) {
	for _, setting := range strings.Split(settings, ";") {
		settingsSet, err = parseSetting(s, setting, settingsSet)
		if err != nil {
			return
		}
	}
	return
}

func parseSetting(s Settings, setting string, settingsSet []string) (newSettingsSet []string, err error) {
	newSettingsSet = settingsSet
	setting = strings.TrimSpace(setting)
	if setting == "" {
		return
	}
	if strings.HasPrefix(setting, "file:") {
		filePath := replaceTildeInDir(strings.TrimPrefix(setting, "file:"))
		var contents []byte
		contents, err = os.ReadFile(filePath)
		if err != nil {
			err = errors.Wrapf(err, "failed to read settings from file %q", filePath)
			return
		}
		for _, line := range strings.Split(string(contents), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			for _, lineSetting := range strings.Split(line, ";") {
				newSettingsSet, err = parseSetting(s, lineSetting, newSettingsSet)
				if err != nil {
					return
				}
			}
		}
		return
	}

	name, valueStr, found := strings.Cut(setting, "=")
	if !found {
		err = errors.Errorf("can't parse setting %q: each setting requires the format \"<name>=<value>\"", setting)
		return
	}
	name = strings.TrimSpace(name)
	valueStr = strings.TrimSpace(valueStr)
	value, found := s[name]
	if !found {
		err = errors.Errorf("unknown setting %q, known settings are: %s", name, strings.Join(sortedNames(s), ", "))
		return
	}
	intStr := strings.ReplaceAll(valueStr, "_", "")
	switch v := value.(type) {
	case int:
		var parsed int64
		parsed, err = strconv.ParseInt(intStr, 10, 0)
		value = int(parsed)
	case int64:
		value, err = strconv.ParseInt(intStr, 10, 64)
	case uint64:
		value, err = strconv.ParseUint(intStr, 10, 64)
	case float64:
		value, err = strconv.ParseFloat(valueStr, 64)
	case bool:
		value, err = strconv.ParseBool(valueStr)
	case string:
		value = valueStr
	case time.Duration:
		value, err = time.ParseDuration(valueStr)
	case []string:
		var parts []string
		for _, part := range strings.Split(valueStr, ",") {
			if part = strings.TrimSpace(part); part != "" {
				parts = append(parts, part)
			}
		}
		value = parts
	default:
		err = errors.Errorf("don't know how to parse type %T for setting %q", v, name)
		return
	}
	if err != nil {
		err = errors.Wrapf(err, "failed to parse value %q for setting %q (default value is %#v)", valueStr, name, s[name])
		return
	}
	s[name] = value
	newSettingsSet = append(newSettingsSet, name)
	return
}

// CreateSettingsFlag creates a string flag with the given flagName (if empty it will be named
// "set") and with a description of the settings in s and their default values.
//
// The flag should be created before the call to `flag.Parse()`.
//
// Example usage:
//
//	func main() {
//		settings := commandline.Settings{"runs": 10, "max_time": 10 * time.Second}
//		settingsFlag := commandline.CreateSettingsFlag(settings, "")
//		flag.Parse()
//		must.M1(commandline.ParseSettings(settings, *settingsFlag))
//		...
//	}
func CreateSettingsFlag(s Settings, flagName string) *string {
	if flagName == "" {
		flagName = "set"
	}
	var sb strings.Builder
	sb.WriteString(`Set of settings separated by ";": e.g. "runs=20;kinds=task_run". Use "file:<path>" to read them from a file.` + "\n")
	sb.WriteString("Settings and their default values:\n")
	sb.WriteString(SprintSettings(s))
	return flag.String(flagName, "", sb.String())
}

// SprintSettings returns the settings sorted by name, one per line.
func SprintSettings(s Settings) string {
	var sb strings.Builder
	for _, name := range sortedNames(s) {
		value := s[name]
		switch v := value.(type) {
		case []string:
			value = strings.Join(v, ",")
		case string:
			value = strconv.Quote(v)
		}
		_, _ = fmt.Fprintf(&sb, "\t%s=%v\n", name, value)
	}
	return sb.String()
}

func sortedNames(s Settings) []string {
	names := maps.Keys(s)
	slices.Sort(names)
	return names
}

// replaceTildeInDir replaces a leading "~" in path with the user's home directory.
func replaceTildeInDir(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
