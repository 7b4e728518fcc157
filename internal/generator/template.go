package generator

import (
    "errors"
    "fmt"
    "sort"

    "github.com/skillpath/skillpath/internal/model"
)

// ErrTemplateNotFound is returned for an unknown template id.
var ErrTemplateNotFound = errors.New("template not found")

// templateTopic is one curriculum entry of a bundled template.
type templateTopic struct {
    Label         string
    Description   string
    EstimatedTime string
    Resources     []model.Resource
    Skills        []string
}

// Template is a statically bundled roadmap: a fixed topic sequence
// instantiated with the requested difficulty and duration.  Templates need
// no external service call.
type Template struct {
    ID          string
    Name        string
    Description string
    Topic       string
    Tags        []string
    Topics      []templateTopic
}

// builtinTemplates is the catalog shipped with the server.  Order within a
// template's Topics is the curriculum order.
var builtinTemplates = map[string]Template{
    "frontend": {
        ID:          "frontend",
        Name:        "Frontend Web Development",
        Description: "From markup fundamentals to building and deploying interactive web applications.",
        Topic:       "frontend development",
        Tags:        []string{"web", "frontend", "javascript"},
        Topics: []templateTopic{
            {Label: "HTML & Semantic Markup", Description: "Document structure, semantic elements, forms and accessibility basics.", EstimatedTime: "1 week",
                Resources: []model.Resource{{Title: "MDN: HTML", URL: "https://developer.mozilla.org/en-US/docs/Web/HTML", Type: "article"}},
                Skills:    []string{"html", "accessibility"}},
            {Label: "CSS & Layout", Description: "Selectors, the box model, flexbox, grid and responsive design.", EstimatedTime: "2 weeks",
                Resources: []model.Resource{{Title: "MDN: CSS", URL: "https://developer.mozilla.org/en-US/docs/Web/CSS", Type: "article"}},
                Skills:    []string{"css"}},
            {Label: "JavaScript Fundamentals", Description: "Types, functions, closures, the event loop and DOM manipulation.", EstimatedTime: "3 weeks",
                Resources: []model.Resource{{Title: "Eloquent JavaScript", URL: "https://eloquentjavascript.net", Type: "book"}},
                Skills:    []string{"javascript"}},
            {Label: "Version Control with Git", Description: "Commits, branches, merges and collaborating through pull requests.", EstimatedTime: "1 week",
                Resources: []model.Resource{{Title: "Pro Git", URL: "https://git-scm.com/book", Type: "book"}},
                Skills:    []string{"git"}},
            {Label: "A Component Framework", Description: "Components, state, props and client-side routing in a modern framework.", EstimatedTime: "4 weeks",
                Resources: []model.Resource{{Title: "React Docs", URL: "https://react.dev/learn", Type: "article"}},
                Skills:    []string{"react", "spa"}},
            {Label: "Build Tooling & Deployment", Description: "Bundlers, environment configuration and deploying a static site.", EstimatedTime: "1 week",
                Skills: []string{"tooling", "deployment"}},
        },
    },
    "backend-go": {
        ID:          "backend-go",
        Name:        "Backend Development with Go",
        Description: "HTTP services, persistence and deployment with the Go toolchain.",
        Topic:       "backend development",
        Tags:        []string{"go", "backend", "api"},
        Topics: []templateTopic{
            {Label: "Go Language Basics", Description: "Syntax, types, slices, maps, methods and error handling.", EstimatedTime: "2 weeks",
                Resources: []model.Resource{{Title: "A Tour of Go", URL: "https://go.dev/tour", Type: "course"}},
                Skills:    []string{"go"}},
            {Label: "HTTP Services", Description: "Handlers, middleware, routing and JSON APIs.", EstimatedTime: "2 weeks",
                Resources: []model.Resource{{Title: "net/http docs", URL: "https://pkg.go.dev/net/http", Type: "article"}},
                Skills:    []string{"http", "rest"}},
            {Label: "Working with Databases", Description: "SQL fundamentals, database/sql, migrations and transactions.", EstimatedTime: "2 weeks",
                Skills: []string{"sql", "mysql"}},
            {Label: "Concurrency", Description: "Goroutines, channels, context and common concurrency patterns.", EstimatedTime: "2 weeks",
                Resources: []model.Resource{{Title: "Go Concurrency Patterns", URL: "https://go.dev/blog/pipelines", Type: "article"}},
                Skills:    []string{"concurrency"}},
            {Label: "Testing", Description: "Table-driven tests, the testing package and test doubles.", EstimatedTime: "1 week",
                Skills: []string{"testing"}},
            {Label: "Containerize & Deploy", Description: "Docker images, configuration and running a service in production.", EstimatedTime: "1 week",
                Skills: []string{"docker", "deployment"}},
        },
    },
    "data-science": {
        ID:          "data-science",
        Name:        "Data Science Foundations",
        Description: "Statistics, Python tooling and machine-learning fundamentals.",
        Topic:       "data science",
        Tags:        []string{"python", "data", "ml"},
        Topics: []templateTopic{
            {Label: "Python for Data", Description: "Core Python, notebooks, NumPy and pandas.", EstimatedTime: "3 weeks",
                Skills: []string{"python", "pandas"}},
            {Label: "Statistics & Probability", Description: "Distributions, hypothesis testing and confidence intervals.", EstimatedTime: "3 weeks",
                Skills: []string{"statistics"}},
            {Label: "Data Visualization", Description: "Plotting libraries and communicating findings.", EstimatedTime: "1 week",
                Skills: []string{"visualization"}},
            {Label: "Machine Learning Basics", Description: "Regression, classification, overfitting and evaluation metrics.", EstimatedTime: "4 weeks",
                Resources: []model.Resource{{Title: "scikit-learn tutorials", URL: "https://scikit-learn.org/stable/tutorial", Type: "course"}},
                Skills:    []string{"ml", "scikit-learn"}},
            {Label: "A Capstone Project", Description: "An end-to-end analysis on a real dataset, from cleaning to reporting.", EstimatedTime: "2 weeks",
                Skills: []string{"project"}},
        },
    },
    "devops": {
        ID:          "devops",
        Name:        "DevOps Essentials",
        Description: "Infrastructure, automation and the path from commit to production.",
        Topic:       "devops",
        Tags:        []string{"devops", "cloud", "ci"},
        Topics: []templateTopic{
            {Label: "Linux & Shell", Description: "Filesystems, processes, permissions and shell scripting.", EstimatedTime: "2 weeks",
                Skills: []string{"linux", "bash"}},
            {Label: "Networking Basics", Description: "TCP/IP, DNS, HTTP and load balancing.", EstimatedTime: "2 weeks",
                Skills: []string{"networking"}},
            {Label: "Containers", Description: "Docker images, registries, volumes and compose.", EstimatedTime: "2 weeks",
                Skills: []string{"docker"}},
            {Label: "CI/CD Pipelines", Description: "Automated builds, tests and deployments.", EstimatedTime: "1 week",
                Skills: []string{"ci"}},
            {Label: "Orchestration", Description: "Kubernetes objects, deployments and services.", EstimatedTime: "3 weeks",
                Resources: []model.Resource{{Title: "Kubernetes Basics", URL: "https://kubernetes.io/docs/tutorials/kubernetes-basics/", Type: "course"}},
                Skills:    []string{"kubernetes"}},
            {Label: "Monitoring & Alerting", Description: "Metrics, logs, dashboards and on-call hygiene.", EstimatedTime: "1 week",
                Skills: []string{"observability"}},
        },
    },
}

// Templates returns the catalog sorted by id, for the listing endpoint.
func Templates() []Template {
    out := make([]Template, 0, len(builtinTemplates))
    for _, t := range builtinTemplates {
        out = append(out, t)
    }
    sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
    return out
}

// FromTemplate instantiates a bundled template with the requested
// difficulty and duration.
func FromTemplate(templateID, difficulty string, duration model.Duration) (Draft, error) {
    t, ok := builtinTemplates[templateID]
    if !ok {
        return Draft{}, ErrTemplateNotFound
    }
    g := Graph{Nodes: make([]Node, 0, len(t.Topics))}
    for i, topic := range t.Topics {
        g.Nodes = append(g.Nodes, Node{
            ID:            fmt.Sprintf("%s-%d", t.ID, i+1),
            Label:         topic.Label,
            Description:   topic.Description,
            Position:      Position{X: defaultNodeX, Y: float64(i) * defaultNodeGapY},
            Resources:     topic.Resources,
            EstimatedTime: topic.EstimatedTime,
            Difficulty:    difficulty,
        })
    }
    g.Edges = chainEdges(g.Nodes)
    draft := buildDraft(t.Name, t.Description, t.Topic, difficulty, duration,
        model.Generation{Source: model.SourceTemplate}, g)
    draft.Roadmap.Tags = append([]string{}, t.Tags...)
    for i := range draft.Roadmap.Steps {
        if i < len(t.Topics) {
            draft.Roadmap.Steps[i].Skills = append([]string{}, t.Topics[i].Skills...)
        }
    }
    return draft, nil
}
