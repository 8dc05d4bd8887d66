// Package all registers every rule.
package all

import (
	_ "github.com/projectlint/projectlint/pkg/rule/composer" // register rules
	_ "github.com/projectlint/projectlint/pkg/rule/docker"   // register rules
	_ "github.com/projectlint/projectlint/pkg/rule/github"   // register rules
	_ "github.com/projectlint/projectlint/pkg/rule/js"       // register rules
)
