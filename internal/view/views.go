package view

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"user-admin/internal/store"
)

// UsersView fetches the user list through the store and prints it as a table.
type UsersView struct {
	store *store.Store
}

func NewUsersView(s *store.Store) *UsersView {
	return &UsersView{store: s}
}

func (v *UsersView) Render(ctx context.Context, w io.Writer) error {
	if err := v.store.FetchUsers(ctx); err != nil {
		fmt.Fprintf(w, "error: %s\n", v.store.Err())
		return err
	}
	return RenderUsers(w, v.store.Snapshot())
}

// RenderUsers prints the users of state, marking the selected one.
func RenderUsers(w io.Writer, state store.State) error {
	if state.Error != "" {
		fmt.Fprintf(w, "error: %s\n", state.Error)
	}
	if len(state.Users) == 0 {
		_, err := fmt.Fprintln(w, "No users yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, " \tID\tNAME\tEMAIL\tCREATED")
	for _, u := range state.Users {
		marker := " "
		if state.Selected != nil && state.Selected.ID == u.ID {
			marker = "*"
		}
		created := ""
		if !u.CreatedAt.IsZero() {
			created = u.CreatedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", marker, u.ID, u.Name, u.Email, created)
	}
	return tw.Flush()
}

type AboutView struct{}

func (AboutView) Render(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, "user-admin: list, create, update and delete users of the user API.")
	return err
}
