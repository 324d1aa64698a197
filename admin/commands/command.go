package commands

import (
	"context"
	"encoding/json"

	"github.com/onflow/flight-surety/admin"
)

// AdminCommand defines the interface expected for admin command handlers.
type AdminCommand interface {
	// Validator is responsible for validating that the input forms a valid request.
	// By convention, Validator may set the ValidatorData field on the request, and
	// this will persist when the request is passed to Handler.
	// Returns admin.InvalidAdminReqError for invalid requests.
	Validator(request *admin.CommandRequest) error
	// Handler is responsible for handling the request. It applies any state
	// changes associated with the request and returns any values which should
	// be displayed to the initiator of the request.
	Handler(ctx context.Context, request *admin.CommandRequest) (any, error)
}

// Register adds the command to the bootstrapper under name.
func Register(bootstrapper *admin.CommandRunnerBootstrapper, name string, command AdminCommand) bool {
	return bootstrapper.RegisterHandler(name, command.Handler) &&
		bootstrapper.RegisterValidator(name, command.Validator)
}

// ConvertToInterfaceList converts a value into a list of generic JSON values.
func ConvertToInterfaceList(list any) ([]any, error) {
	var resultList []any
	bytes, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(bytes, &resultList)
	return resultList, err
}

// ConvertToMap converts a value into a generic JSON object.
func ConvertToMap(object any) (map[string]any, error) {
	var result map[string]any
	bytes, err := json.Marshal(object)
	if err != nil {
		return nil, err
	}
	err = json.Unmarshal(bytes, &result)
	return result, err
}
