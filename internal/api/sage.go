// Package api provides clients for the AskSage platform API.
package api

// TrainOptions carries the optional parameters of a training call.
type TrainOptions struct {
	Dataset   string
	Context   string
	Summarize bool
}

// QueryOptions carries the optional parameters of a query call.
type QueryOptions struct {
	Model   string
	Persona string
}

// Sage is the capability surface of the AskSage platform consumed by the
// command layer. Every operation returns the raw remote response, which may
// take any of the shapes handled by the response package, or a transport
// error when the call itself failed.
type Sage interface {
	GetDatasets() (any, error)
	AddDataset(name string) (any, error)
	DeleteDataset(name string) (any, error)
	AssignDataset(name string) (any, error)
	TrainWithFile(path string, opts TrainOptions) (any, error)
	Query(message string, opts QueryOptions) (any, error)
	QueryWithFile(message, path string, opts QueryOptions) (any, error)
	QueryPlugin(message, plugin string, opts QueryOptions) (any, error)
	CountMonthlyTokens() (any, error)
	CountMonthlyTeachTokens() (any, error)
	GetModels() (any, error)
}
