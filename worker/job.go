package worker

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Args are the arguments passed into a job
type Args map[string]interface{}

func (a Args) String() string {
	b, _ := json.Marshal(a)

	return string(b)
}

// Job to be processed by a Worker
type Job struct {
	Handler string `json:"handler"`
	Args    Args   `json:"args,omitempty"`
}

func (j Job) String() string {
	b, _ := json.Marshal(j)

	return string(b)
}
