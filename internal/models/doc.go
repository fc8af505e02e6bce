// Package models provides functionality for listing the OpenAI models
// available to an API key so users can pick a chat model suitable for
// catalog translation.
package models
