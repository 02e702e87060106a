package config

import "strings"

type Cors struct{}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}

func NewAllowedOrigins(origins ...string) AllowedOrigins {
	allowed := make(AllowedOrigins, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return allowed
}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

func (Cors) GetAllowedOrigins() AllowedOrigins {
	raw := GetEnv("ALLOWED_ORIGINS", "")
	if raw == "" {
		return AllowedOrigins{}
	}
	allowed := AllowedOrigins{}
	for _, origin := range strings.Split(raw, ",") {
		allowed[strings.TrimSpace(origin)] = struct{}{}
	}
	return allowed
}

func (Cors) GetAllowedMethods() string {
	return "GET, POST, PUT, PATCH, DELETE"
}

func (Cors) GetAllowedHeaders() string {
	return "Content-Type, Authorization"
}
