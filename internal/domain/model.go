package domain

import "strings"

// Model is one of the hosted chat models the gateway is allowed to route to.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Note string `json:"note"`
}

// Models is the fixed catalog offered to users. The first entry is the default.
var Models = []Model{
	{ID: "HuggingFaceH4/zephyr-7b-beta", Name: "Zephyr 7B β", Note: "7B instruction-tuned chat model"},
	{ID: "Qwen/Qwen2.5-7B-Instruct", Name: "Qwen 2.5 7B Instruct", Note: "multilingual instruction model"},
	{ID: "mistralai/Mistral-7B-Instruct-v0.2", Name: "Mistral 7B Instruct v0.2", Note: "7B instruction model"},
	{ID: "google/gemma-2-2b-it", Name: "Gemma 2 2B IT", Note: "small instruction-tuned model"},
	{ID: "TinyLlama/TinyLlama-1.1B-Chat-v1.0", Name: "TinyLlama 1.1B Chat", Note: "edge-sized chat model"},
}

// DefaultModel returns the catalog's first entry.
func DefaultModel() Model {
	return Models[0]
}

// LookupModel finds a catalog entry by exact identifier, ignoring
// surrounding whitespace.
func LookupModel(id string) (Model, bool) {
	id = strings.TrimSpace(id)
	for _, m := range Models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}
