package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/SpiritForge_Go/internal/domain"
	"github.com/osse101/SpiritForge_Go/internal/identifier"
)

// IdentifierResponse describes a parsed resource identifier
type IdentifierResponse struct {
	Raw        string                     `json:"raw"`
	Valid      bool                       `json:"valid"`
	Identifier *domain.ResourceIdentifier `json:"identifier,omitempty"`
	Canonical  string                     `json:"canonical,omitempty"`
	Label      string                     `json:"label,omitempty"`
	Wildcard   bool                       `json:"wildcard"`
	Suggestion string                     `json:"suggestion,omitempty"`
}

// HandleParseIdentifier parses, labels and, when invalid, suggests a
// correction for a resource identifier
// @Summary Parse resource identifier
// @Tags identifiers
// @Produce json
// @Param raw query string true "Identifier, e.g. monster.*.eye"
// @Success 200 {object} IdentifierResponse
// @Failure 400 {object} ErrorResponse
// @Router /identifiers [get]
func HandleParseIdentifier(codec *identifier.Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("raw")
		if raw == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "raw"))
			return
		}

		resp := IdentifierResponse{Raw: raw}
		id, err := codec.Parse(raw, true)
		if err != nil {
			if suggestion, ok := codec.Suggest(raw); ok {
				resp.Suggestion = suggestion
			}
			respondJSON(w, http.StatusOK, resp)
			return
		}

		resp.Valid = true
		resp.Identifier = &id
		resp.Canonical = id.String()
		resp.Label = codec.Format(id)
		resp.Wildcard = id.IsWildcard()
		respondJSON(w, http.StatusOK, resp)
	}
}
