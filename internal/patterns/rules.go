package patterns

import (
	"regexp"

	fw "github.com/papapumpkin/steer/internal/framework"
)

var (
	reactish = []fw.ID{fw.NextJS, fw.React}
	vueish   = []fw.ID{fw.Vue, fw.Nuxt}
	nextOnly = []fw.ID{fw.NextJS}
	laravel  = []fw.ID{fw.Laravel}
)

func dep(d Dimension, value, pattern string, only ...fw.ID) Rule {
	return Rule{Dimension: d, Value: value, Source: FromDependency, Pattern: regexp.MustCompile(pattern), Frameworks: only}
}

func path(d Dimension, value, pattern string, only ...fw.ID) Rule {
	return Rule{Dimension: d, Value: value, Source: FromPath, Pattern: regexp.MustCompile(pattern), Frameworks: only}
}

func content(d Dimension, value, pattern string, only ...fw.ID) Rule {
	return Rule{Dimension: d, Value: value, Source: FromContent, Pattern: regexp.MustCompile(pattern), Frameworks: only}
}

func base(d Dimension, value, pattern string, only ...fw.ID) Rule {
	return Rule{Dimension: d, Value: value, Source: FromBasename, Pattern: regexp.MustCompile(pattern), Frameworks: only}
}

// rules is evaluated in full for every analysis; order does not affect the
// outcome.
var rules = []Rule{
	dep(StateManagement, "Zustand", `^zustand$`),
	content(StateManagement, "Zustand", `from\s+['"]zustand(/[a-z]+)?['"]`),
	dep(StateManagement, "Redux Toolkit", `^(@reduxjs/toolkit|redux|react-redux)$`),
	content(StateManagement, "Redux Toolkit", `\b(createSlice|configureStore)\(`),
	dep(StateManagement, "Jotai", `^jotai$`),
	content(StateManagement, "Jotai", `from\s+['"]jotai['"]`),
	dep(StateManagement, "Recoil", `^recoil$`),
	dep(StateManagement, "MobX", `^mobx(-react(-lite)?)?$`),
	dep(StateManagement, "Pinia", `^pinia$`),
	content(StateManagement, "Pinia", `\bdefineStore\(`, vueish...),
	dep(StateManagement, "Vuex", `^vuex$`),
	content(StateManagement, "Vuex", `from\s+['"]vuex['"]`),
	content(StateManagement, "React Context", `\bcreateContext\(`, reactish...),
	dep(StateManagement, "Livewire component state", `^livewire/livewire$`, laravel...),

	path(RoutingStyle, "File-based (App Router)", `^(src/)?app/(.+/)?page\.(tsx|jsx|ts|js)$`, nextOnly...),
	path(RoutingStyle, "File-based (Pages Router)", `^(src/)?pages/.+\.(tsx|jsx|ts|js)$`, nextOnly...),
	path(RoutingStyle, "File-based (pages/)", `^pages/.+\.vue$`, fw.Nuxt),
	dep(RoutingStyle, "React Router", `^react-router(-dom)?$`),
	content(RoutingStyle, "React Router", `\b(createBrowserRouter\(|<Route\s)`, reactish...),
	dep(RoutingStyle, "TanStack Router", `^@tanstack/react-router$`),
	dep(RoutingStyle, "Vue Router", `^vue-router$`, fw.Vue),
	content(RoutingStyle, "Vue Router", `\bcreateRouter\(`, fw.Vue),
	path(RoutingStyle, "Route files (routes/*.php)", `^routes/[a-z]+\.php$`, laravel...),

	path(APIPattern, "Route Handlers (app/api)", `^(src/)?app/(.+/)?api/(.+/)?route\.(ts|js)$`, nextOnly...),
	path(APIPattern, "API Routes (pages/api)", `^(src/)?pages/api/.+\.(ts|js)$`, nextOnly...),
	content(APIPattern, "Server Actions", `(?m)^\s*['"]use server['"]`, nextOnly...),
	path(APIPattern, "Nitro server routes (server/api)", `^server/api/.+\.(ts|js)$`, fw.Nuxt),
	path(APIPattern, "Controllers (app/Http/Controllers)", `^app/Http/Controllers/.+\.php$`, laravel...),
	dep(APIPattern, "tRPC", `^@trpc/`),
	content(APIPattern, "tRPC", `from\s+['"]@trpc/`),
	dep(APIPattern, "GraphQL", `^(graphql|@apollo/server|@apollo/client|urql)$`),
	base(APIPattern, "GraphQL", `\.(graphql|gql)$`),
	path(APIPattern, "Service modules", `^(src/)?(api|services)/.+\.(ts|js)$`, fw.React, fw.Vue),

	content(ComponentPattern, "Client Components (\"use client\")", `(?m)^\s*['"]use client['"]`, nextOnly...),
	base(ComponentPattern, "Server Components by default", `^(page|layout)\.(tsx|jsx)$`, nextOnly...),
	content(ComponentPattern, "Composition API (<script setup>)", `<script\b[^>]*\bsetup\b`, vueish...),
	content(ComponentPattern, "Options API", `export\s+default\s+\{[\s\S]{0,200}?\bdata\s*\(\)`, vueish...),
	content(ComponentPattern, "Function components", `(?m)^export\s+(default\s+)?function\s+[A-Z]\w*\s*\(`, fw.React),
	content(ComponentPattern, "Class components", `extends\s+(React\.)?(Pure)?Component\b`, fw.React),
	base(ComponentPattern, "Blade templates", `\.blade\.php$`, laravel...),
	path(ComponentPattern, "Livewire components", `^app/(Http/)?Livewire/.+\.php$`, laravel...),
	dep(ComponentPattern, "Inertia pages", `^(inertiajs/inertia-laravel|@inertiajs/(react|vue3))$`, laravel...),

	dep(Styling, "Tailwind CSS", `^tailwindcss$`),
	base(Styling, "Tailwind CSS", `^tailwind\.config\.(js|ts|cjs|mjs)$`),
	content(Styling, "Tailwind CSS", `@tailwind\s+(base|components|utilities)|@import\s+['"]tailwindcss['"]`),
	base(Styling, "CSS Modules", `\.module\.(css|scss|sass)$`),
	dep(Styling, "styled-components", `^styled-components$`),
	content(Styling, "styled-components", `from\s+['"]styled-components['"]`),
	dep(Styling, "Emotion", `^@emotion/(react|styled)$`),
	dep(Styling, "Material UI", `^@mui/material$`),
	base(Styling, "Sass", `^[^.]+\.(scss|sass)$`),

	dep(Authentication, "NextAuth.js (Auth.js)", `^(next-auth|@auth/core|@auth/nextjs)$`),
	path(Authentication, "NextAuth.js (Auth.js)", `api/auth/\[\.\.\.nextauth\]/`),
	dep(Authentication, "Clerk", `^@clerk/`),
	content(Authentication, "Clerk", `from\s+['"]@clerk/`),
	dep(Authentication, "Supabase Auth", `^@supabase/(ssr|auth-helpers-[a-z]+|auth-js)$`),
	content(Authentication, "Supabase Auth", `supabase\.auth\.`),
	dep(Authentication, "Laravel Sanctum", `^laravel/sanctum$`),
	content(Authentication, "Laravel Sanctum", `auth:sanctum`, laravel...),
	dep(Authentication, "Laravel Breeze", `^laravel/breeze$`),
	dep(Authentication, "Laravel Fortify", `^laravel/fortify$`),
	dep(Authentication, "Lucia", `^lucia$`),
	dep(Authentication, "Better Auth", `^better-auth$`),
	dep(Authentication, "JWT", `^(jsonwebtoken|jose|github\.com/golang-jwt/jwt(/v\d+)?|pyjwt)$`),
	content(Authentication, "Firebase Auth", `\bgetAuth\(`),

	dep(DataFetching, "TanStack Query", `^@tanstack/(react|vue)-query$`),
	content(DataFetching, "TanStack Query", `\buse(Suspense)?Query\(\s*\{`),
	dep(DataFetching, "SWR", `^swr$`),
	content(DataFetching, "SWR", `\buseSWR\(`),
	content(DataFetching, "Nuxt useFetch", `\b(useFetch|useAsyncData|\$fetch)\(`, fw.Nuxt),
	dep(DataFetching, "axios", `^axios$`),
	content(DataFetching, "axios", `\baxios\.(get|post|put|patch|delete|create)\(`),
	content(DataFetching, "Apollo Client", `from\s+['"]@apollo/client['"]`),
	content(DataFetching, "fetch API", `\bawait\s+fetch\(`),
	content(DataFetching, "Eloquent ORM", `::(where|find|findOrFail|all|query|create)\(`, laravel...),

	base(NamingConvention, "PascalCase component files", `^[A-Z][a-zA-Z0-9]*\.(tsx|jsx|vue)$`),
	base(NamingConvention, "kebab-case files", `^[a-z0-9]+(-[a-z0-9]+)+\.(tsx|jsx|vue|ts|js)$`),
	base(NamingConvention, "camelCase files", `^[a-z]+([A-Z][a-z0-9]*)+\.(tsx|jsx|ts|js)$`),
	base(NamingConvention, "snake_case files", `^[a-z0-9]+(_[a-z0-9]+)+\.(py|go|rb|ts|js)$`),
	base(NamingConvention, "PascalCase classes", `^[A-Z][a-zA-Z0-9]*\.php$`, laravel...),
}
