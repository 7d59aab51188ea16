package dashboard

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	core "github.com/leapstack-labs/celldash/internal/dashboard"
)

// SessionName is the cookie holding a browser's filter selection.
const SessionName = "celldash"

const (
	keySessionID = "sid"
	keyCategory  = "category"
	keySize      = "size"
	keyRowFacet  = "row_facet"
	keyColFacet  = "col_facet"
)

// session returns the caller's session. A cookie that fails to decode yields a
// fresh session, so every browser starts with all filters unset.
func (h *Handlers) session(r *http.Request) *sessions.Session {
	sess, err := h.sessionStore.Get(r, SessionName)
	if err != nil {
		h.logger.Debug("discarding unreadable session", "error", err)
	}
	if sess == nil {
		sess = sessions.NewSession(h.sessionStore, SessionName)
	}
	return sess
}

func filtersFrom(sess *sessions.Session) core.FilterSelection {
	str := func(key string) string {
		s, _ := sess.Values[key].(string)
		return s
	}
	return core.FilterSelection{
		Category: str(keyCategory),
		Size:     str(keySize),
		RowFacet: str(keyRowFacet),
		ColFacet: str(keyColFacet),
	}
}

func sessionID(sess *sessions.Session) string {
	s, _ := sess.Values[keySessionID].(string)
	return s
}

// saveFilters stores f in the session. It must run before any body is written.
func (h *Handlers) saveFilters(w http.ResponseWriter, r *http.Request, sess *sessions.Session, f core.FilterSelection) error {
	if sessionID(sess) == "" {
		sess.Values[keySessionID] = uuid.NewString()
	}
	sess.Values[keyCategory] = f.Category
	sess.Values[keySize] = f.Size
	sess.Values[keyRowFacet] = f.RowFacet
	sess.Values[keyColFacet] = f.ColFacet
	return sess.Save(r, w)
}
