/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package credentials reads the group/key credential file shared with the rancid tooling.
package credentials

import (
	"errors"
	"fmt"
	"sync"

	"gopkg.in/ini.v1"
)

//go:generate mockgen -destination=mock_credentials.go -package=credentials github.com/carverauto/netdisco-rancid/pkg/credentials Provider

var (
	// ErrCredentialSource is returned when the credential file cannot be read or parsed.
	ErrCredentialSource = errors.New("credential source unavailable")
	// ErrCredentialNotFound is returned when a group or key is absent.
	ErrCredentialNotFound = errors.New("credential not found")
)

const (
	KeyUser     = "user"
	KeyPassword = "pass"
)

// Provider returns a single credential value.
type Provider interface {
	Get(group, key string) (string, error)
}

// INIProvider serves credentials from an INI file with one section per group:
//
//	[NetDiscoCredentials]
//	user = netdisco
//	pass = secret
type INIProvider struct {
	file *ini.File
	path string
}

// NewINIProvider loads and parses path once.
func NewINIProvider(path string) (*INIProvider, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:         false,
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCredentialSource, path, err)
	}

	return &INIProvider{file: file, path: path}, nil
}

// Get implements Provider.
func (p *INIProvider) Get(group, key string) (string, error) {
	section, err := p.file.GetSection(group)
	if err != nil {
		return "", fmt.Errorf("%w: section [%s] in %s", ErrCredentialNotFound, group, p.path)
	}

	if !section.HasKey(key) {
		return "", fmt.Errorf("%w: %s.%s in %s", ErrCredentialNotFound, group, key, p.path)
	}

	return section.Key(key).String(), nil
}

// LazyINIProvider defers reading the INI file until the first Get, so runs that never
// need a credential do not require the file to exist.
type LazyINIProvider struct {
	path     string
	once     sync.Once
	provider *INIProvider
	err      error
}

// NewLazyINIProvider returns a provider that loads path on first use.
func NewLazyINIProvider(path string) *LazyINIProvider {
	return &LazyINIProvider{path: path}
}

// Get implements Provider. A load failure is returned from every call.
func (p *LazyINIProvider) Get(group, key string) (string, error) {
	p.once.Do(func() {
		p.provider, p.err = NewINIProvider(p.path)
	})

	if p.err != nil {
		return "", p.err
	}

	return p.provider.Get(group, key)
}

// Pair is a username/password couple read from one group.
type Pair struct {
	Username string
	Password string
}

// Lookup fetches the user and pass keys of group. Both must exist.
func Lookup(p Provider, group string) (Pair, error) {
	user, err := p.Get(group, KeyUser)
	if err != nil {
		return Pair{}, err
	}

	pass, err := p.Get(group, KeyPassword)
	if err != nil {
		return Pair{}, err
	}

	return Pair{Username: user, Password: pass}, nil
}
