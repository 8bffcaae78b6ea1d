package listfile

import "github.com/iudanet/statemod/internal/fixedformat"

func headerWith(comments ...string) fixedformat.HeaderOptions {
	return fixedformat.HeaderOptions{Program: "test", NewComments: comments}
}
