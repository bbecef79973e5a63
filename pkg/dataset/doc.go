// Package dataset reads and writes the photo list the mosaic is built from.
//
// # JSON Format
//
// A dataset is a JSON object with an "items" array:
//
//	{
//	  "items": [
//	    {"image": "photos/01.jpg", "height": 1200},
//	    {"image": "https://example.com/b.jpg", "height": 800, "id": "b"}
//	  ]
//	}
//
// Required fields:
//   - image: URL or relative path of the photograph
//   - height: natural height in pixels, must be positive
//
// Optional:
//   - id: stable identifier. When omitted, an id is derived from the image
//     reference with a name-based UUID, so the same image keeps its id across
//     reloads.
//
// Calling [Load] with an empty path returns the built-in set of 30
// photographs.
package dataset
