package deps

import (
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"

	"github.com/papapumpkin/steer/internal/scan"
)

// envTemplates are committed env files whose keys document required
// variables. Real .env files are never read for names.
var envTemplates = []string{
	".env.example",
	".env.sample",
	".env.local.example",
	".env.template",
	".env.dist",
}

// envReferences captures variable names read from source code.
var envReferences = []*regexp.Regexp{
	regexp.MustCompile(`process\.env\.([A-Z][A-Z0-9_]*)`),
	regexp.MustCompile(`process\.env\[\s*['"]([A-Z][A-Z0-9_]*)['"]\s*\]`),
	regexp.MustCompile(`import\.meta\.env\.([A-Z][A-Z0-9_]*)`),
	regexp.MustCompile(`\benv\(\s*['"]([A-Z][A-Z0-9_]*)['"]`),
	regexp.MustCompile(`os\.Getenv\(\s*"([A-Z][A-Z0-9_]*)"\s*\)`),
	regexp.MustCompile(`os\.(?:environ(?:\.get)?|getenv)\s*[\(\[]\s*['"]([A-Z][A-Z0-9_]*)['"]`),
}

var envSourceExts = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs", ".vue", ".php", ".go", ".py"}

// envBuiltins are set by runtimes and bundlers, not by the project.
var envBuiltins = map[string]bool{
	"NODE_ENV": true,
	"MODE":     true,
	"DEV":      true,
	"PROD":     true,
	"SSR":      true,
	"BASE_URL": true,
}

// EnvVars returns the sorted, unique environment variable names a project
// documents in env templates or reads from its sources.
func EnvVars(res *scan.Result) []string {
	set := map[string]bool{}
	for _, p := range envTemplates {
		content := res.Content(p)
		if content == "" {
			continue
		}
		vals, err := godotenv.Parse(strings.NewReader(content))
		if err != nil {
			continue
		}
		for k := range vals {
			set[k] = true
		}
	}
	for _, f := range res.WithExt(envSourceExts...) {
		if !f.Loaded {
			continue
		}
		for _, re := range envReferences {
			for _, m := range re.FindAllSubmatch(f.Content, -1) {
				if name := string(m[1]); !envBuiltins[name] {
					set[name] = true
				}
			}
		}
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var envDescriptions = map[string]string{
	"DATABASE_URL":                  "Database connection string",
	"NEXT_PUBLIC_SUPABASE_URL":      "Supabase project URL",
	"NEXT_PUBLIC_SUPABASE_ANON_KEY": "Supabase anonymous key (public)",
	"SUPABASE_SERVICE_ROLE_KEY":     "Supabase service role key (server-only)",
	"NEXTAUTH_SECRET":               "NextAuth.js secret",
	"NEXTAUTH_URL":                  "NextAuth.js URL",
	"OPENAI_API_KEY":                "OpenAI API key",
	"STRIPE_SECRET_KEY":             "Stripe secret key",
	"STRIPE_PUBLISHABLE_KEY":        "Stripe publishable key",
	"APP_KEY":                       "Laravel application key",
	"APP_URL":                       "Application URL",
}

// envPatterns apply in order when no exact description exists.
var envPatterns = []struct {
	all  []string
	desc string
}{
	{[]string{"SUPABASE", "URL"}, "Supabase project URL"},
	{[]string{"SUPABASE", "ANON"}, "Supabase anonymous key"},
	{[]string{"SUPABASE", "SERVICE"}, "Supabase service role key"},
	{[]string{"DATABASE"}, "Database connection"},
	{[]string{"DB_"}, "Database connection"},
	{[]string{"API_KEY"}, "API key"},
	{[]string{"APIKEY"}, "API key"},
	{[]string{"SECRET"}, "Secret key"},
	{[]string{"URL"}, "Service URL"},
}

// DescribeEnvVar returns a short human description of a variable name.
func DescribeEnvVar(name string) string {
	if d, ok := envDescriptions[name]; ok {
		return d
	}
	upper := strings.ToUpper(name)
	for _, p := range envPatterns {
		matched := true
		for _, part := range p.all {
			if !strings.Contains(upper, part) {
				matched = false
				break
			}
		}
		if matched {
			return p.desc
		}
	}
	return "Required"
}
