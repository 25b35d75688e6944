package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"originform/pkg/sentinel"
)

// fileKV persists CLI progress as a small JSON map under the user config
// directory, one file per scope. It satisfies progress.KV so the CLI and the
// browser-style Redis backend share the same save/load semantics.
type fileKV struct {
	path string
}

func newFileKV(scope string) (*fileKV, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	dir = filepath.Join(dir, "formctl")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &fileKV{path: filepath.Join(dir, scope+".json")}, nil
}

func (kv *fileKV) Get(_ context.Context, key string) (string, error) {
	values, err := kv.read()
	if err != nil {
		return "", err
	}
	if v, ok := values[key]; ok {
		return v, nil
	}
	return "", sentinel.ErrNotFound
}

func (kv *fileKV) Set(_ context.Context, key, value string) error {
	values, err := kv.read()
	if err != nil {
		return err
	}
	values[key] = value
	return kv.write(values)
}

func (kv *fileKV) Remove(_ context.Context, key string) error {
	values, err := kv.read()
	if err != nil {
		return err
	}
	delete(values, key)
	return kv.write(values)
}

func (kv *fileKV) read() (map[string]string, error) {
	data, err := os.ReadFile(kv.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// A corrupt state file must not block the form; start fresh.
		return map[string]string{}, nil
	}
	return values, nil
}

func (kv *fileKV) write(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return os.WriteFile(kv.path, data, 0o600)
}
