package handler

import (
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"
)

const (
	// DataStarAcceptHeader is sent by every Datastar fetch action.
	DataStarAcceptHeader = "text/event-stream"
	// DataStarQueryParam carries signals on GET requests.
	DataStarQueryParam = "datastar"
	// DataStarRequestHeader is set by the Datastar client on backend actions.
	DataStarRequestHeader = "Datastar-Request"
)

const (
	PatchOuter   = datastar.ElementPatchModeOuter
	PatchInner   = datastar.ElementPatchModeInner
	PatchReplace = datastar.ElementPatchModeReplace
	PatchRemove  = datastar.ElementPatchModeRemove
	PatchAppend  = datastar.ElementPatchModeAppend
	PatchPrepend = datastar.ElementPatchModePrepend
	PatchBefore  = datastar.ElementPatchModeBefore
	PatchAfter   = datastar.ElementPatchModeAfter
)

// IsDataStar reports whether r was issued by the Datastar client.
func IsDataStar(r *http.Request) bool {
	if r.Header.Get(DataStarRequestHeader) != "" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), DataStarAcceptHeader) {
		return true
	}
	if r.URL.Query().Has(DataStarQueryParam) {
		return true
	}
	return strings.Contains(r.Header.Get("Content-Type"), "application/x-datastar")
}
