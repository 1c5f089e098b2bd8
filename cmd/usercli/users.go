package main

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"
	"user-admin/internal/entity"
	"user-admin/internal/view"
)

func (a *app) create(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	name := fs.String("name", "", "name of the new user")
	email := fs.String("email", "", "email of the new user")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := a.store.CreateUser(ctx, entity.User{Name: *name, Email: *email})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "created user %d\n", user.ID)
	a.store.Select(user)
	return view.RenderUsers(a.out, a.store.Snapshot())
}

func (a *app) update(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	id := fs.Int64("id", 0, "id of the user to edit")
	name := fs.String("name", "", "new name")
	email := fs.String("email", "", "new email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *id == 0 {
		_, err := a.store.UpdateUser(ctx, entity.User{Name: *name, Email: *email})
		return err
	}

	if err := a.store.FetchUsers(ctx); err != nil {
		return err
	}

	var found bool
	for _, u := range a.store.Users() {
		if u.ID == *id {
			a.store.Select(&u)
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("user %d not found", *id)
	}

	edit := a.store.Selected()
	if fs.Changed("name") {
		edit.Name = *name
	}
	if fs.Changed("email") {
		edit.Email = *email
	}

	user, err := a.store.UpdateUser(ctx, *edit)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "updated user %d\n", user.ID)
	a.store.Select(user)
	return view.RenderUsers(a.out, a.store.Snapshot())
}

func (a *app) delete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.Int64("id", 0, "id of the user to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.store.FetchUsers(ctx); err != nil {
		return err
	}
	if err := a.store.DeleteUser(ctx, *id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "deleted user %d\n", *id)
	return view.RenderUsers(a.out, a.store.Snapshot())
}
