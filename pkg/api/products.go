package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/marketfoods/storefront/pkg/errors"
)

type ListProductsOptions struct {
	// Mine scopes the list to the caller's own products. Requires a
	// logged-in identity; the server matches on the identity header.
	Mine bool
}

func (c *Client) ListProducts(ctx context.Context, opts ListProductsOptions) ([]Product, error) {
	var query url.Values
	if opts.Mine {
		query = url.Values{"mine": {"1"}}
	}
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/products", query, nil, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
}

// ImageUpload is an optional product image attached as a multipart part.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// CreateProduct registers a new product and returns its id. With an
// image the request goes out as multipart form data, plain JSON
// otherwise.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput, image *ImageUpload) (int, error) {
	var result struct {
		ID int `json:"id"`
	}
	if image == nil {
		if err := c.doJSON(ctx, http.MethodPost, "/products", nil, in, &result); err != nil {
			return 0, err
		}
		return result.ID, nil
	}

	body, contentType, err := productForm(0, in, image)
	if err != nil {
		return 0, err
	}
	if err := c.do(ctx, http.MethodPost, "/products", nil, body, contentType, &result); err != nil {
		return 0, err
	}
	return result.ID, nil
}

// UpdateProduct replaces the product's fields; the image is only
// replaced when one is provided.
func (c *Client) UpdateProduct(ctx context.Context, id int, in ProductInput, image *ImageUpload) error {
	if image == nil {
		payload := struct {
			ID int `json:"id"`
			ProductInput
		}{ID: id, ProductInput: in}
		return c.doJSON(ctx, http.MethodPut, "/products", nil, payload, nil)
	}

	body, contentType, err := productForm(id, in, image)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/products", nil, body, contentType, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	query := url.Values{"id": {strconv.Itoa(id)}}
	return c.do(ctx, http.MethodDelete, "/products", query, nil, "", nil)
}

func productForm(id int, in ProductInput, image *ImageUpload) (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	fields := map[string]string{
		"name":        in.Name,
		"description": in.Description,
		"category":    in.Category,
		"unit":        in.Unit,
		"price":       strconv.FormatFloat(in.Price, 'f', -1, 64),
		"stock":       strconv.Itoa(in.Stock),
	}
	if id > 0 {
		fields["id"] = strconv.Itoa(id)
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, "", errors.Wrap(errors.CodeInternal, err, "building product form")
		}
	}

	part, err := writer.CreateFormFile("image", image.Filename)
	if err != nil {
		return nil, "", errors.Wrap(errors.CodeInternal, err, "building product form")
	}
	if _, err := io.Copy(part, image.Content); err != nil {
		return nil, "", errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("reading image %q", image.Filename))
	}
	if err := writer.Close(); err != nil {
		return nil, "", errors.Wrap(errors.CodeInternal, err, "building product form")
	}
	return buf, writer.FormDataContentType(), nil
}
