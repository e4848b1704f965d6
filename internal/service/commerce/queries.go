package commerce

// GraphQL 조작 문서 모음입니다. 상품/장바구니 공통 필드는 프래그먼트로 공유합니다.

const productFragment = `
fragment productFields on Product {
  id
  title
  handle
  description
  featuredImage {
    url
    altText
  }
  priceRange {
    minVariantPrice {
      amount
      currencyCode
    }
  }
  variants(first: 20) {
    edges {
      node {
        id
        title
        availableForSale
        price {
          amount
          currencyCode
        }
      }
    }
  }
}`

const cartFragment = `
fragment cartFields on Cart {
  id
  checkoutUrl
  totalQuantity
  cost {
    totalAmount {
      amount
      currencyCode
    }
  }
  lines(first: 50) {
    edges {
      node {
        id
        quantity
        merchandise {
          ... on ProductVariant {
            id
            title
            price {
              amount
              currencyCode
            }
            product {
              title
              handle
              featuredImage {
                url
                altText
              }
            }
          }
        }
      }
    }
  }
}`

const listProductsQuery = `
query ListProducts($first: Int!) {
  products(first: $first) {
    edges {
      node {
        ...productFields
      }
    }
  }
}` + productFragment

const productByHandleQuery = `
query ProductByHandle($handle: String!) {
  product(handle: $handle) {
    ...productFields
  }
}` + productFragment

const cartCreateMutation = `
mutation CartCreate {
  cartCreate {
    cart {
      ...cartFields
    }
    userErrors {
      field
      message
    }
  }
}` + cartFragment

const getCartQuery = `
query GetCart($cartId: ID!) {
  cart(id: $cartId) {
    ...cartFields
  }
}` + cartFragment

const cartLinesAddMutation = `
mutation CartLinesAdd($cartId: ID!, $lines: [CartLineInput!]!) {
  cartLinesAdd(cartId: $cartId, lines: $lines) {
    cart {
      ...cartFields
    }
    userErrors {
      field
      message
    }
  }
}` + cartFragment

const cartLinesRemoveMutation = `
mutation CartLinesRemove($cartId: ID!, $lineIds: [ID!]!) {
  cartLinesRemove(cartId: $cartId, lineIds: $lineIds) {
    cart {
      ...cartFields
    }
    userErrors {
      field
      message
    }
  }
}` + cartFragment
