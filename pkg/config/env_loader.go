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

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/netdisco-rancid/pkg/logger"
)

var (
	// ErrDstMustBeNonNilPointer indicates that the destination must be a non-nil pointer.
	ErrDstMustBeNonNilPointer = errors.New("dst must be a non-nil pointer")
	// ErrDstMustBePointerToStruct indicates that the destination must be a pointer to a struct.
	ErrDstMustBePointerToStruct = errors.New("dst must be a pointer to a struct")
)

var durationType = reflect.TypeOf(time.Duration(0))

// EnvConfigLoader loads configuration from environment variables.
// Nested struct fields use underscore separation, so DATABASE_HOST maps to
// config.Database.Host (json tag names, upper-cased).
type EnvConfigLoader struct {
	logger logger.Logger
	prefix string
}

// NewEnvConfigLoader creates a new environment variable config loader.
func NewEnvConfigLoader(log logger.Logger, prefix string) *EnvConfigLoader {
	if log == nil {
		log = logger.NewTestLogger()
	}

	return &EnvConfigLoader{
		logger: log,
		prefix: prefix,
	}
}

// Load implements ConfigLoader by reading from environment variables.
func (e *EnvConfigLoader) Load(_ context.Context, _ string, dst interface{}) error {
	e.logger.Debug().Str("prefix", e.prefix).Msg("Loading configuration from environment variables")

	// A complete JSON document takes precedence over individual variables.
	if jsonConfig := os.Getenv(e.prefix + "CONFIG_JSON"); jsonConfig != "" {
		if err := json.Unmarshal([]byte(jsonConfig), dst); err != nil {
			return fmt.Errorf("failed to unmarshal CONFIG_JSON: %w", err)
		}

		return nil
	}

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return ErrDstMustBeNonNilPointer
	}

	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return ErrDstMustBePointerToStruct
	}

	if _, err := e.loadStruct(v, e.prefix); err != nil {
		return err
	}

	return nil
}

// loadStruct recursively loads a struct and reports whether any field was set.
func (e *EnvConfigLoader) loadStruct(v reflect.Value, prefix string) (bool, error) {
	t := v.Type()
	loaded := false

	for i := 0; i < t.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		jsonTag := fieldType.Tag.Get("json")
		if jsonTag == "" || jsonTag == "-" {
			continue
		}

		envName := buildEnvName(prefix, strings.Split(jsonTag, ",")[0])

		set, err := e.setFieldValue(field, envName)
		if err != nil {
			return loaded, err
		}

		loaded = loaded || set
	}

	return loaded, nil
}

func buildEnvName(prefix, fieldName string) string {
	envName := strings.ToUpper(fieldName)
	envName = strings.ReplaceAll(envName, ".", "_")

	return prefix + envName
}

// setFieldValue sets a struct field from the environment and reports whether it did.
func (e *EnvConfigLoader) setFieldValue(field reflect.Value, envName string) (bool, error) {
	if isNestedStruct(field) {
		return e.loadNested(field, envName+"_")
	}

	envValue, ok := os.LookupEnv(envName)
	if !ok || envValue == "" {
		return false, nil
	}

	if err := setFieldByKind(field, envName, envValue); err != nil {
		return false, err
	}

	e.logger.Debug().Str("env", envName).Str("value", "[set]").Msg("Loaded value from environment variable")

	return true, nil
}

func isNestedStruct(field reflect.Value) bool {
	if _, ok := field.Addr().Interface().(json.Unmarshaler); ok {
		return false
	}

	if field.Kind() == reflect.Struct {
		return true
	}

	return field.Kind() == reflect.Ptr && field.Type().Elem().Kind() == reflect.Struct
}

// loadNested only allocates nil struct pointers when one of their fields is present.
func (e *EnvConfigLoader) loadNested(field reflect.Value, prefix string) (bool, error) {
	if field.Kind() == reflect.Struct {
		return e.loadStruct(field, prefix)
	}

	target := reflect.New(field.Type().Elem())
	if !field.IsNil() {
		target.Elem().Set(field.Elem())
	}

	loaded, err := e.loadStruct(target.Elem(), prefix)
	if err != nil || !loaded {
		return false, err
	}

	field.Set(target)

	return true, nil
}

// setFieldByKind sets field value based on its reflect.Kind.
func setFieldByKind(field reflect.Value, envName, envValue string) error {
	if u, ok := field.Addr().Interface().(json.Unmarshaler); ok {
		return setUnmarshalerField(u, envName, envValue)
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(envValue)
	case reflect.Bool:
		b, err := strconv.ParseBool(envValue)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %w", envName, err)
		}

		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setIntField(field, envName, envValue)
	case reflect.Slice:
		return setSliceField(field, envName, envValue)
	default:
		if err := json.Unmarshal([]byte(envValue), field.Addr().Interface()); err != nil {
			return fmt.Errorf("unsupported type %s for %s: %w", field.Kind(), envName, err)
		}
	}

	return nil
}

// setUnmarshalerField accepts raw JSON or, failing that, treats the value as a JSON string.
func setUnmarshalerField(u json.Unmarshaler, envName, envValue string) error {
	if err := u.UnmarshalJSON([]byte(envValue)); err == nil {
		return nil
	}

	if err := u.UnmarshalJSON([]byte(strconv.Quote(envValue))); err != nil {
		return fmt.Errorf("invalid value for %s: %w", envName, err)
	}

	return nil
}

// setIntField sets an integer field value, with special handling for time.Duration.
func setIntField(field reflect.Value, envName, envValue string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(envValue)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", envName, err)
		}

		field.SetInt(int64(d))

		return nil
	}

	i, err := strconv.ParseInt(envValue, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid integer value for %s: %w", envName, err)
	}

	field.SetInt(i)

	return nil
}

// setSliceField splits string slices on commas and decodes anything else as JSON.
func setSliceField(field reflect.Value, envName, envValue string) error {
	if field.Type().Elem().Kind() != reflect.String {
		if err := json.Unmarshal([]byte(envValue), field.Addr().Interface()); err != nil {
			return fmt.Errorf("invalid slice value for %s: %w", envName, err)
		}

		return nil
	}

	values := strings.Split(envValue, ",")
	slice := reflect.MakeSlice(field.Type(), 0, len(values))

	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			slice = reflect.Append(slice, reflect.ValueOf(v).Convert(field.Type().Elem()))
		}
	}

	field.Set(slice)

	return nil
}
