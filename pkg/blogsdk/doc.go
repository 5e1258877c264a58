/*
Package blogsdk is a Go client for the blog API.

# Client vs Session

Client covers the anonymous endpoints and creates authenticated Sessions:

	client := blogsdk.NewClient("http://localhost:8080")

	// Create an account
	reg, err := client.Register(ctx, blogsdk.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw123",
	})

	// Public reads
	posts, err := client.ListPosts(ctx)
	post, err := client.GetPost(ctx, 7)

	// Log in
	session, err := client.Login(ctx, "alice", "pw123")

A Session attaches the access token to each request and exchanges its
refresh token for a new access token shortly before the current one
expires:

	me, err := session.Me(ctx)
	post, err := session.CreatePost(ctx, blogsdk.PostInput{Title: "Hello", Content: "..."})
	post, err = session.PatchPost(ctx, post.ID, blogsdk.PostPatch{Title: blogsdk.String("Hi")})
	err = session.DeletePost(ctx, post.ID)

# Errors

Any non-2xx response is returned as *APIError:

	var apiErr *blogsdk.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusForbidden {
		// not the author
	}

The server uses the same type to write its error responses, so both sides
agree on the wire format.
*/
package blogsdk
