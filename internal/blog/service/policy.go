package service

import "github.com/aussiebroadwan/blog/internal/blog/domain"

// CanRead reports whether caller may read p. Posts are public.
func CanRead(domain.Post, *domain.Identity) bool { return true }

// CanWrite reports whether caller may update or delete p: only its author can.
func CanWrite(p domain.Post, caller *domain.Identity) bool {
	return caller != nil && p.AuthorID == caller.UserID
}
