package extractor

import "github.com/larascope/larascope/internal/project"

// ExtractController mines one controller source unit. Returns false
// when no class is declared.
func ExtractController(src string) (*project.ControllerEntity, bool) {
	name, ok := className(src)
	if !ok {
		return nil, false
	}
	return &project.ControllerEntity{
		Name:      name,
		Namespace: namespaceOf(src),
		Actions:   segmentFunctions(src),
	}, true
}

// ExtractService mines one service-class source unit. Services share
// the controller shape and only feed the full class diagram.
func ExtractService(src string) (*project.ServiceEntity, bool) {
	name, ok := className(src)
	if !ok {
		return nil, false
	}
	return &project.ServiceEntity{
		Name:      name,
		Namespace: namespaceOf(src),
		Actions:   segmentFunctions(src),
	}, true
}
