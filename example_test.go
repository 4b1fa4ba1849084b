package pufu_test

import (
	"fmt"

	"github.com/tiannian/pufu"
)

type UserRecord struct {
	ID     uint64
	Active bool
	Handle string
	Scores []int32
	Tags   []string
}

func Example() {
	cfg := pufu.NewConfigBuilder().Little().Build()
	codec := pufu.NewCodec(cfg)

	u := UserRecord{
		ID:     7,
		Active: true,
		Handle: "octocat",
		Scores: []int32{10, 20, 30},
		Tags:   []string{"admin", "beta"},
	}

	data, err := codec.Encode(u)
	if err != nil {
		fmt.Println("encode error:", err)
		return
	}

	var out UserRecord
	if err := codec.Decode(data, &out); err != nil {
		fmt.Println("decode error:", err)
		return
	}

	fmt.Println(out.Handle, out.Scores, out.Tags)
	// Output: octocat [10 20 30] [admin beta]
}
