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
	"errors"
	"reflect"
	"strings"
)

var errSanitizeInput = errors.New("input must be a struct or pointer to struct")

// Sanitize converts a configuration struct into a map keyed by json names, dropping
// fields tagged sensitive:"true". The result is safe to log.
func Sanitize(cfg interface{}) (map[string]interface{}, error) {
	result, ok := sanitizeValue(reflect.ValueOf(cfg)).(map[string]interface{})
	if !ok {
		return nil, errSanitizeInput
	}

	return result, nil
}

func sanitizeValue(v reflect.Value) interface{} {
	if v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil
		}

		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		if !v.IsValid() || !v.CanInterface() {
			return nil
		}

		return v.Interface()
	}

	t := v.Type()
	out := make(map[string]interface{}, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() || field.Tag.Get("sensitive") == "true" {
			continue
		}

		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "-" {
			continue
		}

		if name == "" {
			name = field.Name
		}

		out[name] = sanitizeValue(v.Field(i))
	}

	return out
}
