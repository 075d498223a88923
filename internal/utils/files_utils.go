/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */
package utils

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ParseListFlag splits a comma-separated flag value into trimmed,
// non-empty entries.
func ParseListFlag(flagValue string) []string {
	if flagValue == "" {
		return nil
	}
	parts := strings.Split(flagValue, ",")
	var entries []string
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			entries = append(entries, part)
		}
	}
	return entries
}

// ReadQueryFile reads a literal SQL statement from a file.
func ReadQueryFile(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read query file: %w", err)
	}
	stmt := strings.TrimSpace(string(content))
	if stmt == "" {
		return "", fmt.Errorf("query file '%s' is empty", filePath)
	}
	return stmt, nil
}

func GetDefaultOutputFilePath(projectName, commandName string) string {
	switch commandName {
	case "show-query":
		return fmt.Sprintf("%s_query.sql", projectName)
	default:
		return fmt.Sprintf("%s_extract.csv", projectName)
	}
}

func ConfirmAction(actionDescription string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("\n-------------------------------------------------------------\n")
	fmt.Printf("Prepared %s:\n", actionDescription)
	fmt.Print("Do you want to upload these files to the bucket? (yes/no): ")
	text, _ := reader.ReadString('\n')
	action := strings.TrimSpace(strings.ToLower(text))
	return action == "yes" || action == "y"
}
