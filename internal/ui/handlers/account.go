package handlers

import "net/http"

func (h *HandlerService) HandleLogin(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		h.notifyInvalid(w, r, s, "Please enter your email and password.")
		return
	}

	payload, err := s.Client.Login(r.Context(), email, password)
	h.notifyResult(w, r, s, "login", payload, err, "Logged in")
}

func (h *HandlerService) HandleRegister(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")
	if username == "" || password == "" {
		h.notifyInvalid(w, r, s, "Please fill in all fields.")
		return
	}

	payload, err := s.Client.Register(r.Context(), username, password)
	h.notifyResult(w, r, s, "register", payload, err, "Account created")
}

func (h *HandlerService) HandleLogout(w http.ResponseWriter, r *http.Request) {
	s, ok := session(w, r)
	if !ok {
		return
	}

	payload, err := s.Client.Logout(r.Context())
	h.notifyResult(w, r, s, "logout", payload, err, "Logged out")
}
