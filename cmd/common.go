/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/valpere/medtran/internal/detector"
	"github.com/valpere/medtran/internal/pipeline"
	"github.com/valpere/medtran/internal/store"
	"github.com/valpere/medtran/internal/translator"
	"github.com/valpere/medtran/internal/validator"
)

// credentialEnv lists the conventional variables checked when no
// credential is configured, per backend.
var credentialEnv = map[string][]string{
	"huggingface": {"HF_API_TOKEN", "HUGGINGFACEHUB_API_TOKEN", "HF_TOKEN"},
	"openai":      {"OPENAI_API_KEY"},
	"google":      {"GOOGLE_API_KEY"},
}

// buildService constructs the backend named in the configuration.
func buildService(name, baseURL, model string, timeout time.Duration) (translator.TranslationService, error) {
	switch name {
	case "huggingface", "hf", "":
		return translator.NewHuggingFaceService(baseURL, model, timeout), nil
	case "openai":
		return translator.NewOpenAIService(baseURL, model, timeout), nil
	case "google":
		return translator.NewGoogleService(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
}

func credentialFor(backend string) string {
	if c := viper.GetString("credential"); c != "" {
		return c
	}
	for _, env := range credentialEnv[backend] {
		if c := os.Getenv(env); c != "" {
			return c
		}
	}
	return ""
}

type pipelineOptions struct {
	detect  bool
	history bool
}

// buildPipeline assembles the pipeline from configuration. The returned
// closer releases the history database, if one was opened.
func buildPipeline(opts pipelineOptions) (*pipeline.Pipeline, func() error, error) {
	backend := viper.GetString("backend")
	timeout := viper.GetDuration("timeout")

	svc, err := buildService(backend, viper.GetString("base_url"), viper.GetString("model"), timeout)
	if err != nil {
		return nil, nil, err
	}

	credential := credentialFor(svc.Name())
	if credential == "" {
		logger.Warn("no credential configured; the service will likely reject the request", "service", svc.Name())
	}

	p := &pipeline.Pipeline{
		Service: svc,
		Config: translator.ServiceConfig{
			Credential: credential,
			Timeout:    timeout,
		},
		Logger: logger,
	}
	if svc.Name() == "google" {
		p.Config.BaseURL = viper.GetString("base_url")
	}

	checkLanguage := viper.GetBool("check_language")
	if opts.detect || checkLanguage {
		det := detector.New()
		if opts.detect {
			p.Detector = det
		}
		if checkLanguage {
			p.Checker = validator.New(det)
		}
	}

	closer := func() error { return nil }
	if opts.history && viper.GetBool("history.enabled") {
		db, err := openStore(viper.GetString("history.db"))
		if err != nil {
			return nil, nil, err
		}
		p.History = db
		closer = db.Close
	}

	return p, closer, nil
}

func openStore(path string) (*store.Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
