package docs

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/larascope/larascope/internal/project"
)

// Classification buckets a controller action by its name.
type Classification string

const (
	ClassList    Classification = "list"
	ClassShow    Classification = "show"
	ClassCreate  Classification = "create"
	ClassUpdate  Classification = "update"
	ClassDelete  Classification = "delete"
	ClassGeneric Classification = "generic"
)

// classifications maps exact action names and their aliases. Anything
// unmatched is generic.
var classifications = map[string]Classification{
	"index":   ClassList,
	"all":     ClassList,
	"list":    ClassList,
	"show":    ClassShow,
	"view":    ClassShow,
	"get":     ClassShow,
	"store":   ClassCreate,
	"create":  ClassCreate,
	"add":     ClassCreate,
	"update":  ClassUpdate,
	"edit":    ClassUpdate,
	"destroy": ClassDelete,
	"delete":  ClassDelete,
	"remove":  ClassDelete,
}

// descriptions is the fixed human-readable template per classification.
var descriptions = map[Classification]string{
	ClassList:    "Retrieves a collection of records and returns them as a list.",
	ClassShow:    "Looks up a single record by its identifier and returns it.",
	ClassCreate:  "Validates the submitted data and persists a new record.",
	ClassUpdate:  "Validates the submitted data and updates an existing record.",
	ClassDelete:  "Removes a record and confirms the deletion.",
	ClassGeneric: "Handles the request with custom controller logic.",
}

// lifecycleHooks are controller methods that never get a sequence
// diagram of their own.
var lifecycleHooks = map[string]bool{
	"__construct": true,
	"middleware":  true,
	"authorize":   true,
}

// Sequence is one per-action diagram plus its manifest record. The
// manifest fields carry JSON tags; the diagram text itself is written
// to a separate artifact and only referenced by filename.
type Sequence struct {
	ID             string   `json:"id"`
	DisplayName    string   `json:"displayName"`
	Controller     string   `json:"controller"`
	Action         string   `json:"action"`
	Classification string   `json:"classification"`
	Description    string   `json:"description"`
	Participants   []string `json:"participants"`
	Filename       string   `json:"filename"`
	GeneratedAt    string   `json:"generatedAt"`

	Diagram string `json:"-"`
}

// BuildSequences renders one sequence diagram per qualifying
// controller action. now stamps every manifest record; the diagram
// text itself carries no timestamp.
func BuildSequences(p *project.Project, now time.Time) []Sequence {
	var sequences []Sequence
	stamp := now.UTC().Format(time.RFC3339)

	for _, c := range p.Controllers {
		for _, a := range c.Actions {
			if lifecycleHooks[a.Name] {
				continue
			}
			class := classify(a.Name)
			participants := participantModels(p, a.Body)

			sequences = append(sequences, Sequence{
				ID:             uuid.New().String(),
				DisplayName:    fmt.Sprintf("%s — %s", c.Name, a.Name),
				Controller:     c.Name,
				Action:         a.Name,
				Classification: string(class),
				Description:    descriptions[class],
				Participants:   participants,
				Filename:       sequenceFilename(c.Name, a.Name),
				GeneratedAt:    stamp,
				Diagram:        renderSequence(c.Name, a.Name, class, participants),
			})
		}
	}
	return sequences
}

func classify(action string) Classification {
	if c, ok := classifications[action]; ok {
		return c
	}
	return ClassGeneric
}

// participantModels lists every known model whose name occurs in the
// action body, in assembled model order. The first hit serves as the
// primary participant where a template needs exactly one.
func participantModels(p *project.Project, body string) []string {
	var names []string
	for _, m := range p.Models {
		if strings.Contains(body, m.Name) {
			names = append(names, m.Name)
		}
	}
	return names
}

// sequenceFilename derives the artifact name from controller and
// action: PostController.show becomes post_controller_show.mmd.
func sequenceFilename(controller, action string) string {
	return project.Snake(controller) + "_" + project.Snake(action) + ".mmd"
}

// renderSequence writes the Mermaid sequenceDiagram for one action.
// The five specific classifications share the Client → Route →
// Controller → Model → Database spine with matching returns; generic
// actions render a conditional split instead.
func renderSequence(controller, action string, class Classification, participants []string) string {
	model := "Model"
	if len(participants) > 0 {
		model = participants[0]
	}

	var b strings.Builder
	b.WriteString("sequenceDiagram\n")
	b.WriteString("    actor Client\n")
	b.WriteString("    participant Route\n")
	fmt.Fprintf(&b, "    participant Controller as %s\n", controller)
	if class == ClassCreate || class == ClassUpdate {
		b.WriteString("    participant Validator\n")
	}
	if class != ClassGeneric {
		fmt.Fprintf(&b, "    participant Model as %s\n", model)
	}
	b.WriteString("    participant Database\n\n")

	fmt.Fprintf(&b, "    Client->>Route: HTTP request\n")
	fmt.Fprintf(&b, "    Route->>Controller: %s()\n", action)

	switch class {
	case ClassList:
		fmt.Fprintf(&b, "    Controller->>Model: query %s collection\n", model)
		b.WriteString("    Model->>Database: SELECT\n")
		b.WriteString("    Database-->>Model: rows\n")
		b.WriteString("    Model-->>Controller: collection\n")
		b.WriteString("    Controller-->>Client: 200 OK\n")
	case ClassShow:
		fmt.Fprintf(&b, "    Controller->>Model: find %s by id\n", model)
		b.WriteString("    Model->>Database: SELECT\n")
		b.WriteString("    Database-->>Model: row\n")
		b.WriteString("    Model-->>Controller: record\n")
		b.WriteString("    Controller-->>Client: 200 OK\n")
	case ClassCreate:
		b.WriteString("    Controller->>Validator: validate input\n")
		b.WriteString("    Validator-->>Controller: validated data\n")
		fmt.Fprintf(&b, "    Controller->>Model: create %s\n", model)
		b.WriteString("    Model->>Database: INSERT\n")
		b.WriteString("    Database-->>Model: new row\n")
		b.WriteString("    Model-->>Controller: record\n")
		b.WriteString("    Controller-->>Client: 201 Created\n")
	case ClassUpdate:
		b.WriteString("    Controller->>Validator: validate input\n")
		b.WriteString("    Validator-->>Controller: validated data\n")
		fmt.Fprintf(&b, "    Controller->>Model: update %s\n", model)
		b.WriteString("    Model->>Database: UPDATE\n")
		b.WriteString("    Database-->>Model: updated row\n")
		b.WriteString("    Model-->>Controller: record\n")
		b.WriteString("    Controller-->>Client: 200 OK\n")
	case ClassDelete:
		fmt.Fprintf(&b, "    Controller->>Model: delete %s\n", model)
		b.WriteString("    Model->>Database: DELETE\n")
		b.WriteString("    Database-->>Model: confirmation\n")
		b.WriteString("    Model-->>Controller: done\n")
		b.WriteString("    Controller-->>Client: 204 No Content\n")
	default:
		b.WriteString("    alt database interaction\n")
		fmt.Fprintf(&b, "        Controller->>Database: query/persist\n")
		b.WriteString("        Database-->>Controller: result\n")
		b.WriteString("        Controller-->>Client: response\n")
		b.WriteString("    else direct response\n")
		b.WriteString("        Controller-->>Client: response\n")
		b.WriteString("    end\n")
	}

	return b.String()
}
