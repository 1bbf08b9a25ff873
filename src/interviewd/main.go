// interviewd is the backend API server for interview preparation.
// It manages users, interviews and questions behind authenticated REST endpoints.
package main

import (
	"github.com/mockstage/interviewd/src/interviewd/core"
)

func main() {
	core.Execute()
}
