package deps

import "strings"

// Category is a dependency bucket from a fixed taxonomy.
type Category string

// Categories in taxonomy order.
const (
	Framework     Category = "Framework"
	Database      Category = "Database"
	Auth          Category = "Authentication"
	API           Category = "API"
	DataFetching  Category = "Data Fetching"
	State         Category = "State"
	Routing       Category = "Routing"
	Forms         Category = "Forms"
	UI            Category = "UI & Styling"
	Charts        Category = "Charts"
	Notifications Category = "Notifications"
	Theme         Category = "Theme"
	Payments      Category = "Payments"
	AI            Category = "AI"
	Email         Category = "Email"
	Testing       Category = "Testing"
	BuildTools    Category = "Build Tools"
	Linting       Category = "Linting"
	Observability Category = "Observability"
	Utilities     Category = "Utilities"
	Other         Category = "Other"
)

var taxonomy = []Category{
	Framework, Database, Auth, API, DataFetching, State, Routing, Forms, UI,
	Charts, Notifications, Theme, Payments, AI, Email, Testing, BuildTools,
	Linting, Observability, Utilities, Other,
}

// Taxonomy returns every category in order, ending with Other.
func Taxonomy() []Category {
	out := make([]Category, len(taxonomy))
	copy(out, taxonomy)
	return out
}

// Rule maps a lowercase key to a category. Exact rules match the whole
// name; the rest match any substring.
type Rule struct {
	Key      string
	Category Category
	Exact    bool
	Purpose  string
}

func exact(key string, c Category, purpose string) Rule {
	return Rule{Key: key, Category: c, Exact: true, Purpose: purpose}
}

func contains(key string, c Category, purpose string) Rule {
	return Rule{Key: key, Category: c, Purpose: purpose}
}

var rules = []Rule{
	// Framework
	exact("next", Framework, "React framework"),
	exact("nuxt", Framework, "Vue framework"),
	exact("react", Framework, "UI library"),
	exact("react-dom", Framework, "React DOM renderer"),
	exact("vue", Framework, "UI library"),
	exact("svelte", Framework, "UI compiler"),
	exact("@sveltejs/kit", Framework, "Svelte framework"),
	exact("astro", Framework, "Content framework"),
	exact("express", Framework, "Node.js HTTP framework"),
	exact("fastify", Framework, "Node.js HTTP framework"),
	exact("koa", Framework, "Node.js HTTP framework"),
	exact("hono", Framework, "Edge HTTP framework"),
	contains("@nestjs/", Framework, "NestJS"),
	exact("laravel/framework", Framework, "PHP framework"),
	contains("inertia", Framework, "Inertia.js"),
	exact("livewire/livewire", Framework, "Laravel Livewire"),
	exact("django", Framework, "Python web framework"),
	exact("flask", Framework, "Python web framework"),
	exact("fastapi", Framework, "Python API framework"),
	exact("rails", Framework, "Ruby web framework"),
	exact("actix-web", Framework, "Rust web framework"),
	exact("axum", Framework, "Rust web framework"),
	exact("rocket", Framework, "Rust web framework"),
	contains("github.com/gin-gonic/gin", Framework, "Go HTTP framework"),
	contains("github.com/labstack/echo", Framework, "Go HTTP framework"),
	contains("github.com/gofiber/fiber", Framework, "Go HTTP framework"),
	exact("github.com/go-chi/chi/v5", Framework, "Go HTTP router"),

	// Database
	contains("prisma", Database, "Prisma ORM"),
	contains("drizzle", Database, "Drizzle ORM"),
	contains("supabase", Database, "Supabase (PostgreSQL)"),
	contains("mongoose", Database, "MongoDB ODM"),
	contains("mongodb", Database, "MongoDB driver"),
	exact("typeorm", Database, "TypeORM"),
	exact("sequelize", Database, "Sequelize ORM"),
	exact("knex", Database, "Knex query builder"),
	exact("kysely", Database, "Kysely query builder"),
	exact("pg", Database, "PostgreSQL client"),
	contains("postgres", Database, "PostgreSQL"),
	contains("mysql", Database, "MySQL"),
	contains("sqlite", Database, "SQLite"),
	contains("redis", Database, "Redis"),
	contains("firebase", Database, "Firebase"),
	contains("@planetscale/", Database, "PlanetScale"),
	contains("@neondatabase/", Database, "Neon serverless Postgres"),
	contains("jackc/pgx", Database, "PostgreSQL driver"),
	contains("gorm", Database, "GORM"),
	contains("sqlalchemy", Database, "SQLAlchemy"),
	contains("sqlmodel", Database, "SQLModel"),
	contains("psycopg", Database, "PostgreSQL driver"),
	exact("diesel", Database, "Diesel ORM"),
	exact("sqlx", Database, "SQLx"),
	contains("doctrine/", Database, "Doctrine"),

	// Authentication
	exact("next-auth", Auth, "NextAuth.js"),
	contains("@auth/", Auth, "Auth.js"),
	contains("@clerk/", Auth, "Clerk"),
	contains("passport", Auth, "Passport"),
	exact("jsonwebtoken", Auth, "JWT"),
	exact("jose", Auth, "JWT"),
	contains("bcrypt", Auth, "Password hashing"),
	exact("lucia", Auth, "Lucia auth"),
	exact("better-auth", Auth, "Better Auth"),
	contains("@supabase/auth", Auth, "Supabase Auth"),
	exact("laravel/sanctum", Auth, "Laravel Sanctum"),
	exact("laravel/breeze", Auth, "Laravel Breeze"),
	exact("laravel/fortify", Auth, "Laravel Fortify"),
	exact("laravel/socialite", Auth, "Laravel Socialite"),
	contains("golang-jwt", Auth, "JWT"),
	exact("pyjwt", Auth, "JWT"),
	exact("authlib", Auth, "OAuth"),

	// API
	contains("@trpc/", API, "tRPC"),
	contains("graphql", API, "GraphQL"),
	exact("@apollo/server", API, "Apollo Server"),
	contains("openapi", API, "OpenAPI"),
	contains("swagger", API, "OpenAPI"),
	contains("grpc", API, "gRPC"),
	contains("protobuf", API, "Protocol Buffers"),
	contains("connectrpc", API, "Connect RPC"),

	// Data Fetching
	exact("@tanstack/react-query", DataFetching, "TanStack Query"),
	exact("@tanstack/vue-query", DataFetching, "TanStack Query"),
	exact("react-query", DataFetching, "React Query"),
	exact("swr", DataFetching, "SWR"),
	exact("axios", DataFetching, "HTTP client"),
	exact("ky", DataFetching, "HTTP client"),
	exact("ofetch", DataFetching, "HTTP client"),
	exact("@apollo/client", DataFetching, "Apollo Client"),
	exact("graphql-request", DataFetching, "GraphQL client"),
	exact("urql", DataFetching, "GraphQL client"),
	contains("guzzlehttp/", DataFetching, "HTTP client"),
	exact("requests", DataFetching, "HTTP client"),
	exact("httpx", DataFetching, "HTTP client"),
	exact("reqwest", DataFetching, "HTTP client"),

	// State
	exact("zustand", State, "Zustand"),
	exact("jotai", State, "Jotai"),
	contains("redux", State, "Redux"),
	exact("@reduxjs/toolkit", State, "Redux Toolkit"),
	exact("recoil", State, "Recoil"),
	contains("mobx", State, "MobX"),
	contains("pinia", State, "Pinia"),
	exact("vuex", State, "Vuex"),
	exact("valtio", State, "Valtio"),
	contains("xstate", State, "XState"),
	exact("immer", State, "Immutable updates"),
	contains("nanostores", State, "Nanostores"),

	// Routing
	contains("react-router", Routing, "React Router"),
	exact("vue-router", Routing, "Vue Router"),
	exact("@tanstack/react-router", Routing, "TanStack Router"),
	exact("wouter", Routing, "Wouter"),

	// Forms
	exact("zod", Forms, "Schema validation"),
	exact("yup", Forms, "Schema validation"),
	exact("valibot", Forms, "Schema validation"),
	exact("joi", Forms, "Schema validation"),
	contains("react-hook-form", Forms, "React Hook Form"),
	contains("@hookform/", Forms, "React Hook Form"),
	exact("formik", Forms, "Formik"),
	exact("vee-validate", Forms, "VeeValidate"),
	exact("@tanstack/react-form", Forms, "TanStack Form"),
	exact("pydantic", Forms, "Data validation"),

	// UI & Styling
	contains("tailwind", UI, "Tailwind CSS"),
	contains("@radix-ui/", UI, "Radix UI"),
	contains("lucide", UI, "Lucide icons"),
	contains("@heroicons/", UI, "Heroicons"),
	exact("react-icons", UI, "Icons"),
	exact("class-variance-authority", UI, "Variant styling"),
	exact("clsx", UI, "Class names"),
	exact("classnames", UI, "Class names"),
	contains("@headlessui/", UI, "Headless UI"),
	exact("styled-components", UI, "CSS-in-JS"),
	contains("@emotion/", UI, "CSS-in-JS"),
	exact("sass", UI, "Sass"),
	contains("postcss", UI, "PostCSS"),
	exact("autoprefixer", UI, "PostCSS"),
	contains("@mui/", UI, "Material UI"),
	exact("antd", UI, "Ant Design"),
	contains("@chakra-ui/", UI, "Chakra UI"),
	exact("framer-motion", UI, "Animation"),
	exact("motion", UI, "Animation"),
	contains("vuetify", UI, "Vuetify"),
	contains("primevue", UI, "PrimeVue"),
	exact("@nuxt/ui", UI, "Nuxt UI"),
	contains("bootstrap", UI, "Bootstrap"),
	exact("daisyui", UI, "daisyUI"),
	exact("cmdk", UI, "Command menu"),
	exact("vaul", UI, "Drawer"),
	contains("embla-carousel", UI, "Carousel"),
	exact("@tanstack/react-table", UI, "Tables"),
	exact("geist", UI, "Geist font"),

	// Charts
	contains("chart", Charts, "Charts"),
	exact("recharts", Charts, "Recharts"),
	exact("d3", Charts, "D3"),
	contains("@nivo/", Charts, "Nivo"),
	contains("victory", Charts, "Victory"),

	// Notifications
	exact("sonner", Notifications, "Toasts"),
	contains("toast", Notifications, "Toasts"),
	exact("notistack", Notifications, "Snackbars"),

	// Theme
	exact("next-themes", Theme, "Theme switching"),
	exact("@nuxtjs/color-mode", Theme, "Color mode"),
	exact("mode-watcher", Theme, "Theme switching"),

	// Payments
	contains("stripe", Payments, "Stripe"),
	contains("@paypal/", Payments, "PayPal"),
	contains("laravel/cashier", Payments, "Laravel Cashier"),
	contains("@lemonsqueezy/", Payments, "Lemon Squeezy"),

	// AI
	contains("openai", AI, "OpenAI"),
	contains("@anthropic-ai/", AI, "Anthropic"),
	exact("anthropic", AI, "Anthropic"),
	exact("ai", AI, "Vercel AI SDK"),
	contains("@ai-sdk/", AI, "Vercel AI SDK"),
	contains("langchain", AI, "LangChain"),
	contains("@google/generative-ai", AI, "Gemini"),
	contains("ollama", AI, "Ollama"),

	// Email
	exact("resend", Email, "Resend"),
	exact("nodemailer", Email, "Nodemailer"),
	contains("@react-email/", Email, "React Email"),
	contains("@sendgrid/", Email, "SendGrid"),

	// Testing
	contains("jest", Testing, "Jest"),
	contains("vitest", Testing, "Vitest"),
	contains("@testing-library/", Testing, "Testing Library"),
	contains("playwright", Testing, "Playwright"),
	contains("cypress", Testing, "Cypress"),
	exact("mocha", Testing, "Mocha"),
	exact("chai", Testing, "Chai"),
	exact("msw", Testing, "API mocking"),
	exact("supertest", Testing, "HTTP assertions"),
	contains("phpunit", Testing, "PHPUnit"),
	contains("pestphp/", Testing, "Pest"),
	exact("mockery/mockery", Testing, "Mockery"),
	contains("pytest", Testing, "pytest"),
	contains("testify", Testing, "testify"),
	contains("rspec", Testing, "RSpec"),
	exact("@vue/test-utils", Testing, "Vue Test Utils"),

	// Build Tools
	exact("vite", BuildTools, "Vite"),
	contains("@vitejs/", BuildTools, "Vite plugin"),
	contains("webpack", BuildTools, "webpack"),
	exact("esbuild", BuildTools, "esbuild"),
	contains("rollup", BuildTools, "Rollup"),
	exact("turbo", BuildTools, "Turborepo"),
	exact("typescript", BuildTools, "TypeScript"),
	exact("tsx", BuildTools, "TypeScript runner"),
	exact("ts-node", BuildTools, "TypeScript runner"),
	contains("@swc/", BuildTools, "SWC"),
	contains("babel", BuildTools, "Babel"),
	exact("laravel-vite-plugin", BuildTools, "Laravel Vite"),
	exact("nodemon", BuildTools, "Dev reload"),
	exact("concurrently", BuildTools, "Process runner"),
	contains("@types/", BuildTools, "Type definitions"),

	// Linting
	contains("eslint", Linting, "ESLint"),
	contains("prettier", Linting, "Prettier"),
	exact("prettier-plugin-tailwindcss", Linting, "Prettier"),
	exact("@biomejs/biome", Linting, "Biome"),
	contains("stylelint", Linting, "Stylelint"),
	exact("husky", Linting, "Git hooks"),
	exact("lint-staged", Linting, "Pre-commit linting"),
	exact("laravel/pint", Linting, "Laravel Pint"),
	contains("phpstan", Linting, "PHPStan"),
	contains("larastan", Linting, "Larastan"),
	exact("ruff", Linting, "Ruff"),
	exact("black", Linting, "Black"),
	exact("mypy", Linting, "mypy"),
	exact("flake8", Linting, "flake8"),
	contains("golangci", Linting, "golangci-lint"),
	contains("rubocop", Linting, "RuboCop"),

	// Observability
	contains("@sentry/", Observability, "Sentry"),
	exact("winston", Observability, "Logging"),
	contains("pino", Observability, "Logging"),
	contains("logrus", Observability, "Logging"),
	exact("go.uber.org/zap", Observability, "Logging"),
	contains("monolog", Observability, "Logging"),
	contains("posthog", Observability, "Product analytics"),
	contains("@vercel/analytics", Observability, "Analytics"),
	contains("opentelemetry", Observability, "OpenTelemetry"),

	// Utilities
	contains("lodash", Utilities, "Utility functions"),
	exact("date-fns", Utilities, "Date utilities"),
	exact("dayjs", Utilities, "Date utilities"),
	exact("moment", Utilities, "Date utilities"),
	exact("luxon", Utilities, "Date utilities"),
	exact("nesbot/carbon", Utilities, "Date utilities"),
	exact("uuid", Utilities, "UUIDs"),
	exact("nanoid", Utilities, "IDs"),
	contains("dotenv", Utilities, "Env loading"),
	exact("ramda", Utilities, "Functional utilities"),
	exact("sharp", Utilities, "Image processing"),
	contains("spf13/cobra", Utilities, "CLI"),
	contains("spf13/viper", Utilities, "Configuration"),
	exact("serde", Utilities, "Serialization"),
	exact("tokio", Utilities, "Async runtime"),
}

// Rules returns a copy of the categorization table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Categorize assigns name to exactly one category. Among matching rules the
// longest key wins; on equal length an exact rule beats a substring rule,
// then earlier table entries win. No match yields Other.
func Categorize(name string) (Category, string) {
	r, ok := bestRule(name, rules)
	if !ok {
		return Other, ""
	}
	return r.Category, r.Purpose
}

func bestRule(name string, table []Rule) (Rule, bool) {
	lower := strings.ToLower(name)
	best := -1
	for i, r := range table {
		if r.Exact && lower != r.Key || !r.Exact && !strings.Contains(lower, r.Key) {
			continue
		}
		if best < 0 || beats(r, table[best]) {
			best = i
		}
	}
	if best < 0 {
		return Rule{}, false
	}
	return table[best], true
}

// beats reports whether candidate outranks the current best. Table order is
// implied: a later rule never wins a full tie.
func beats(candidate, current Rule) bool {
	if len(candidate.Key) != len(current.Key) {
		return len(candidate.Key) > len(current.Key)
	}
	return candidate.Exact && !current.Exact
}
