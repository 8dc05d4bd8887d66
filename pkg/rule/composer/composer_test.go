package composer_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/projectlint/projectlint/pkg/finding"
	_ "github.com/projectlint/projectlint/pkg/rule/composer"
	"github.com/projectlint/projectlint/pkg/rule/ruletest"
)

func TestRules(t *testing.T) { //nolint:funlen,maintidx
	t.Parallel()
	file := ruletest.Path("composer.json")
	data := []struct {
		name     string
		rule     string
		manifest string
		exp      []*finding.Finding
	}{
		{
			name:     "require php: no require",
			rule:     "composer-require-php",
			manifest: `{"name": "acme/app"}`,
			exp: []*finding.Finding{
				{Rule: "composer-require-php", Severity: finding.Warning, Message: "No dependencies are required, should at least require php", File: file},
			},
		},
		{
			name:     "require php: php isn't required",
			rule:     "composer-require-php",
			manifest: `{"require": {"ext-json": "*"}}`,
			exp: []*finding.Finding{
				{Rule: "composer-require-php", Severity: finding.Warning, Message: "PHP should be required", File: file, Position: finding.Path("require")},
			},
		},
		{
			name:     "require php: old version",
			rule:     "composer-require-php",
			manifest: `{"require": {"php": "^8.1"}}`,
			exp: []*finding.Finding{
				{Rule: "composer-require-php", Severity: finding.Warning, Message: "should be ^8.2, is ^8.1", File: file, Position: finding.Path("require.php")},
			},
		},
		{
			name:     "require php: ok",
			rule:     "composer-require-php",
			manifest: `{"require": {"php": "^8.2"}}`,
		},
		{
			name:     "dev tools: no require-dev",
			rule:     "composer-dev-tools",
			manifest: `{"require": {"php": "^8.2"}}`,
			exp: []*finding.Finding{
				{Rule: "composer-dev-tools", Severity: finding.Warning, Message: "No dev dependencies are required, should at least require phpunit", File: file},
			},
		},
		{
			name:     "dev tools: missing and outdated",
			rule:     "composer-dev-tools",
			manifest: `{"require-dev": {"phpunit/phpunit": "^10.5", "phpstan/phpstan": "^1.12"}}`,
			exp: []*finding.Finding{
				{Rule: "composer-dev-tools", Severity: finding.Warning, Message: "friendsofphp/php-cs-fixer should be required", File: file, Position: finding.Path("require-dev")},
				{Rule: "composer-dev-tools", Severity: finding.Warning, Message: "should be ^11.0, is ^10.5", File: file, Position: finding.Path("require-dev.phpunit/phpunit")},
			},
		},
		{
			name:     "dev tools: ok",
			rule:     "composer-dev-tools",
			manifest: `{"require-dev": {"phpunit/phpunit": "^11.0", "phpstan/phpstan": "^1.12", "friendsofphp/php-cs-fixer": "^3.64", "mockery/mockery": "^1.6"}}`,
		},
		{
			name:     "platform: not set",
			rule:     "composer-platform",
			manifest: `{"config": {"sort-packages": true}}`,
		},
		{
			name:     "platform: same release line",
			rule:     "composer-platform",
			manifest: `{"config": {"platform": {"php": "8.2.10"}}}`,
		},
		{
			name:     "platform: newer release line",
			rule:     "composer-platform",
			manifest: `{"config": {"platform": {"php": "8.3.1"}}}`,
			exp: []*finding.Finding{
				{Rule: "composer-platform", Severity: finding.Warning, Message: "should be ~8.2, is 8.3.1", File: file, Position: finding.Path("config.platform.php")},
			},
		},
		{
			name:     "platform: invalid version",
			rule:     "composer-platform",
			manifest: `{"config": {"platform": {"php": "latest"}}}`,
			exp: []*finding.Finding{
				{Rule: "composer-platform", Severity: finding.Warning, Message: "latest is not a valid version, should be ~8.2", File: file, Position: finding.Path("config.platform.php")},
			},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			env, _ := ruletest.NewEnv(t, map[string]string{"composer.json": d.manifest})
			got := ruletest.Check(t, env, d.rule)
			if diff := cmp.Diff(d.exp, got); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestRules_inactive(t *testing.T) {
	t.Parallel()
	env, _ := ruletest.NewEnv(t, map[string]string{
		"package.json":               `{}`,
		"vendor/acme/composer.json":  `{}`,
		"vendor/acme/composer.lock":  `{}`,
		"node_modules/composer.json": `{}`,
		"app/composer.lock":          `{}`,
	})
	for _, name := range []string{"composer-require-php", "composer-dev-tools", "composer-platform", "composer-lock"} {
		if ruletest.New(t, env, name).Active() {
			t.Errorf("%s must be inactive", name)
		}
	}
}

func TestRules_malformed(t *testing.T) {
	t.Parallel()
	env, _ := ruletest.NewEnv(t, map[string]string{"composer.json": `{"require": `})
	r := ruletest.New(t, env, "composer-require-php")
	for _, err := range r.Check() {
		if err == nil {
			t.Fatal("malformed composer.json must be an error")
		}
		return
	}
	t.Fatal("an error must be yielded")
}

func TestLock(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	data := []struct {
		name         string
		files        map[string]string
		manifestTime time.Time
		lockTime     time.Time
		exp          []*finding.Finding
	}{
		{
			name:         "out of date",
			files:        map[string]string{"composer.json": "{}", "composer.lock": "{}"},
			manifestTime: now.Add(time.Second),
			lockTime:     now,
			exp: []*finding.Finding{
				{Rule: "composer-lock", Severity: finding.Error, Message: "composer.lock is out of date", File: ruletest.Path("composer.lock")},
			},
		},
		{
			name:         "same time",
			files:        map[string]string{"composer.json": "{}", "composer.lock": "{}"},
			manifestTime: now,
			lockTime:     now,
		},
		{
			name:         "lock is newer",
			files:        map[string]string{"composer.json": "{}", "composer.lock": "{}"},
			manifestTime: now,
			lockTime:     now.Add(time.Hour),
		},
		{
			name:  "no manifest",
			files: map[string]string{"composer.lock": "{}"},
		},
	}
	for _, d := range data {
		t.Run(d.name, func(t *testing.T) {
			t.Parallel()
			env, fs := ruletest.NewEnv(t, d.files)
			if _, ok := d.files["composer.json"]; ok {
				if err := fs.Chtimes(ruletest.Path("composer.json"), d.manifestTime, d.manifestTime); err != nil {
					t.Fatal(err)
				}
			}
			if err := fs.Chtimes(ruletest.Path("composer.lock"), d.lockTime, d.lockTime); err != nil {
				t.Fatal(err)
			}
			got := ruletest.Check(t, env, "composer-lock")
			if diff := cmp.Diff(d.exp, got); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}
