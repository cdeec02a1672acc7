package keywords

import (
	"sort"
	"strings"
)

// Fixed vocabularies, initialized once and never mutated.

// synonyms maps common abbreviations to the canonical dictionary term. The
// same expansion is applied to job-description and resume tokens, so "AWS"
// on one side matches "AWS" on the other through the shared canonical form.
var synonyms = map[string]string{
	"js":       "javascript",
	"ts":       "typescript",
	"py":       "python",
	"k8s":      "kubernetes",
	"aws":      "amazon web services",
	"gcp":      "google cloud platform",
	"ml":       "machine learning",
	"ai":       "artificial intelligence",
	"nlp":      "natural language processing",
	"ci/cd":    "continuous integration",
	"db":       "database",
	"postgres": "postgresql",
}

// dictionary is the curated set of technical and skill terms a job
// description can contribute as required keywords. Restricting extraction to
// this vocabulary trades recall for precision: a generic English word never
// becomes a "requirement". Multi-word entries are matched as phrases.
//
// Growing this list changes recall only, never the extraction contract.
var dictionary = map[string]struct{}{
	// Languages
	"python": {}, "javascript": {}, "typescript": {}, "java": {}, "kotlin": {},
	"swift": {}, "ruby": {}, "rust": {}, "scala": {}, "perl": {}, "php": {},
	"golang": {}, "bash": {}, "powershell": {}, "matlab": {}, "fortran": {},

	// Frontend / frameworks
	"react": {}, "angular": {}, "svelte": {}, "next.js": {}, "nuxt": {},
	"redux": {}, "webpack": {}, "vite": {}, "tailwind": {}, "html5": {},
	"css3": {}, "sass": {}, "jquery": {}, "bootstrap": {}, "flutter": {},

	// Backend / frameworks
	"node.js": {}, "nodejs": {}, "express": {}, "django": {}, "flask": {},
	"fastapi": {}, "spring": {}, "rails": {}, "laravel": {}, "graphql": {},
	"grpc": {}, "websocket": {}, "microservices": {}, "restful": {},

	// Data stores
	"postgresql": {}, "mysql": {}, "mongodb": {}, "redis": {}, "sqlite": {},
	"elasticsearch": {}, "cassandra": {}, "dynamodb": {}, "oracle": {},
	"database": {}, "databases": {}, "mariadb": {}, "memcached": {},

	// Cloud / infra
	"amazon web services": {}, "google cloud platform": {}, "azure": {},
	"kubernetes": {}, "docker": {}, "terraform": {}, "ansible": {},
	"jenkins": {}, "helm": {}, "nginx": {}, "linux": {}, "unix": {},
	"serverless": {}, "lambda": {}, "cloudformation": {}, "openshift": {},
	"prometheus": {}, "grafana": {}, "datadog": {}, "kafka": {},
	"rabbitmq": {}, "devops": {}, "continuous integration": {},
	"continuous deployment": {}, "infrastructure as code": {},

	// Data / ML
	"machine learning": {}, "deep learning": {}, "artificial intelligence": {},
	"natural language processing": {}, "computer vision": {},
	"data science": {}, "data engineering": {}, "data analysis": {},
	"pandas": {}, "numpy": {}, "tensorflow": {}, "pytorch": {},
	"scikit-learn": {}, "spark": {}, "hadoop": {}, "airflow": {},
	"tableau": {}, "power bi": {},

	// Practices / tooling
	"agile": {}, "scrum": {}, "kanban": {}, "jira": {},
	"github": {}, "gitlab": {}, "testing": {}, "unit testing": {},
	"integration testing": {}, "test driven development": {},
	"code review": {}, "pair programming": {}, "debugging": {},
	"monitoring": {}, "observability": {}, "security": {}, "oauth": {},
	"authentication": {}, "encryption": {}, "caching": {}, "scalability": {},
	"performance": {}, "optimization": {}, "distributed systems": {},
	"system design": {}, "architecture": {}, "apis": {},

	// Soft / delivery terms job descriptions commonly require
	"leadership": {}, "mentoring": {}, "communication": {},
	"collaboration": {}, "stakeholder": {}, "documentation": {},
	"troubleshooting": {}, "analytical": {}, "problem solving": {},
}

// phraseTerms lists the multi-word dictionary entries, derived once at
// startup so phrase scanning does not re-walk the whole dictionary.
var phraseTerms = func() []string {
	var out []string
	for term := range dictionary {
		if strings.Contains(term, " ") {
			out = append(out, term)
		}
	}
	sort.Strings(out)
	return out
}()
